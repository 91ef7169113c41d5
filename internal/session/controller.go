// Package session orchestrates the dashboard's refresh lifecycle: token
// bootstrap, the fetch→classify→rank pipeline, the auto-refresh timer, and
// the persisted display mode.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthboard/healthboard/internal/auth"
	"github.com/healthboard/healthboard/internal/health"
	"github.com/healthboard/healthboard/internal/prefs"
)

// DefaultRefreshInterval is how often the auto-refresh timer fires.
const DefaultRefreshInterval = 5 * time.Minute

// Fetcher retrieves a raw snapshot from the health feeds.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*health.Snapshot, error)
}

// State is the controller's current view of the world: the last successful
// cycle's ranked services plus the last cycle's error, if any. Each refresh
// replaces the state wholesale.
type State struct {
	// Services are the ranked services from the last successful cycle.
	Services []health.ClassifiedService

	// FetchedAt is when that cycle ran; zero before the first success.
	FetchedAt time.Time

	// PartialData is set when that cycle absorbed an issues-feed failure.
	PartialData bool

	// LastError is the most recent cycle failure; nil after a success.
	LastError error
}

// ControllerConfig holds configuration for the Controller.
type ControllerConfig struct {
	// Fetcher retrieves snapshots.
	Fetcher Fetcher

	// Tokens exposes the signed-in identity for the control bar.
	Tokens auth.TokenProvider

	// Prefs stores the display mode.
	Prefs prefs.Store

	// Logger for cycle logging.
	Logger zerolog.Logger

	// RefreshInterval between automatic cycles (default: 5 minutes).
	RefreshInterval time.Duration

	// Metrics records fetch cycle outcomes (optional).
	Metrics *FetchMetrics

	// Now is the clock (defaults to time.Now).
	Now func() time.Time
}

// Controller owns the refresh loop and the current dashboard state.
type Controller struct {
	fetcher  Fetcher
	tokens   auth.TokenProvider
	prefs    prefs.Store
	logger   zerolog.Logger
	interval time.Duration
	metrics  *FetchMetrics
	now      func() time.Time

	mu    sync.RWMutex
	state State

	timerMu sync.Mutex
	stop    chan struct{}
}

// NewController creates a controller. The display mode is restored from the
// store on first read, not here; construction does no I/O.
func NewController(cfg ControllerConfig) *Controller {
	interval := cfg.RefreshInterval
	if interval == 0 {
		interval = DefaultRefreshInterval
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Controller{
		fetcher:  cfg.Fetcher,
		tokens:   cfg.Tokens,
		prefs:    cfg.Prefs,
		logger:   cfg.Logger,
		interval: interval,
		metrics:  cfg.Metrics,
		now:      now,
	}
}

// Interval returns the configured auto-refresh interval.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Refresh runs one fetch→classify→rank cycle and replaces the current state.
// A failed cycle keeps the previous data and records the error; the caller
// (or the timer) decides when to try again.
func (c *Controller) Refresh(ctx context.Context) error {
	start := c.now()

	snap, err := c.fetcher.FetchSnapshot(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("refresh cycle failed")
		c.metrics.RecordCycle(c.now().Sub(start), false, err)

		c.mu.Lock()
		c.state.LastError = err
		c.mu.Unlock()
		return err
	}

	ranked := health.Rank(health.ClassifyAll(snap, c.now()))

	c.mu.Lock()
	c.state = State{
		Services:    ranked,
		FetchedAt:   snap.FetchedAt,
		PartialData: snap.PartialData,
	}
	c.mu.Unlock()

	c.logger.Info().
		Int("services", len(ranked)).
		Bool("partial_data", snap.PartialData).
		Dur("duration", c.now().Sub(start)).
		Msg("refresh cycle completed")
	c.metrics.RecordCycle(c.now().Sub(start), snap.PartialData, nil)
	return nil
}

// Current returns the current state. The slice is shared but never mutated
// after publication.
func (c *Controller) Current() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Identity returns the signed-in identity, or nil when unknown.
func (c *Controller) Identity() *auth.Identity {
	if c.tokens == nil {
		return nil
	}
	return c.tokens.ActiveIdentity()
}

// StartAutoRefresh starts the refresh timer. Idempotent: starting a running
// timer is a no-op. Cycle errors are logged and do not stop the timer.
func (c *Controller) StartAutoRefresh(ctx context.Context) {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	if c.stop != nil {
		return
	}

	stop := make(chan struct{})
	c.stop = stop

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				// Last write wins; a cycle overlapping a manual refresh just
				// replaces the state a moment later.
				_ = c.Refresh(ctx)
			}
		}
	}()
}

// StopAutoRefresh stops the refresh timer. Idempotent: stopping a stopped
// timer is a no-op.
func (c *Controller) StopAutoRefresh() {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}

// AutoRefreshRunning reports whether the timer is active.
func (c *Controller) AutoRefreshRunning() bool {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	return c.stop != nil
}

// DisplayMode returns the persisted display mode, defaulting to standard
// when unset or unrecognized.
func (c *Controller) DisplayMode(ctx context.Context) prefs.DisplayMode {
	value, err := c.prefs.Get(ctx, prefs.DisplayModeKey)
	if err != nil {
		return prefs.ModeStandard
	}
	mode := prefs.DisplayMode(value)
	if !prefs.ValidDisplayMode(mode) {
		return prefs.ModeStandard
	}
	return mode
}

// SetDisplayMode validates and persists the display mode.
func (c *Controller) SetDisplayMode(ctx context.Context, mode prefs.DisplayMode) error {
	if !prefs.ValidDisplayMode(mode) {
		return ErrInvalidDisplayMode
	}
	return c.prefs.Set(ctx, prefs.DisplayModeKey, string(mode))
}
