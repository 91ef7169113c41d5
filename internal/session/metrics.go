package session

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/healthboard/healthboard/internal/session"

// FetchMetrics holds metrics for health feed fetch cycles.
type FetchMetrics struct {
	cycleDuration metric.Float64Histogram
	cycleTotal    metric.Int64Counter
	partialTotal  metric.Int64Counter
}

// NewFetchMetrics creates metrics for monitoring fetch cycles.
func NewFetchMetrics() (*FetchMetrics, error) {
	meter := otel.Meter(meterName)

	cycleDuration, err := meter.Float64Histogram(
		"healthboard.fetch.cycle.duration",
		metric.WithDescription("Duration of fetch cycles in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	cycleTotal, err := meter.Int64Counter(
		"healthboard.fetch.cycle.total",
		metric.WithDescription("Total number of fetch cycles"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	partialTotal, err := meter.Int64Counter(
		"healthboard.fetch.cycle.partial",
		metric.WithDescription("Number of cycles that absorbed an issues feed failure"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	return &FetchMetrics{
		cycleDuration: cycleDuration,
		cycleTotal:    cycleTotal,
		partialTotal:  partialTotal,
	}, nil
}

// RecordCycle records the outcome of one fetch cycle.
func (m *FetchMetrics) RecordCycle(duration time.Duration, partial bool, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	// Background context so metrics survive caller cancellation
	ctx := context.TODO()
	m.cycleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.cycleTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	if partial {
		m.partialTotal.Add(ctx, 1)
	}
}
