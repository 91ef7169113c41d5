package health_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthboard/healthboard/internal/health"
)

func TestClassFor(t *testing.T) {
	tests := []struct {
		status health.DisplayStatus
		want   health.StatusClass
	}{
		{health.DisplayOperational, health.ClassHealthy},
		{health.DisplayDegradation, health.ClassDegradation},
		{health.DisplayInterruption, health.ClassIssues},
		{health.DisplayAdvisory, health.ClassAdvisory},
		{health.DisplayExtendedRecovery, health.ClassAdvisory},
		{health.DisplayStatus("SERVICEOPERATIONAL"), health.ClassHealthy},
		{health.DisplayStatus("bogus"), health.ClassUnknown},
		{health.DisplayStatus(""), health.ClassUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, health.ClassFor(tt.status), "status %q", tt.status)
	}
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, "✓", health.IconFor(health.DisplayOperational))
	assert.Equal(t, "⚠", health.IconFor(health.DisplayDegradation))
	assert.Equal(t, "!", health.IconFor(health.DisplayInterruption))
	assert.Equal(t, "⚠", health.IconFor(health.DisplayAdvisory))
	assert.Equal(t, "⚠", health.IconFor(health.DisplayExtendedRecovery))
	assert.Equal(t, "?", health.IconFor(health.DisplayStatus("bogus")))
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Service Operational", health.LabelFor(health.DisplayOperational))
	assert.Equal(t, "Service Advisory", health.LabelFor(health.DisplayAdvisory))
	assert.Equal(t, "Status Unknown", health.LabelFor(health.DisplayStatus("bogus")))
}

func TestIssueStatusTables(t *testing.T) {
	assert.Equal(t, "investigating", health.IssueClassFor(health.IssueInvestigating))
	assert.Equal(t, "restored", health.IssueClassFor(health.IssueRestored))
	assert.Equal(t, "unknown", health.IssueClassFor(health.IssueStatus("bogus")))

	assert.Equal(t, "Investigating", health.IssueLabelFor(health.IssueInvestigating))
	assert.Equal(t, "Degraded", health.IssueLabelFor(health.IssueDegradation))
	// Unmapped statuses fall back to the raw feed value.
	assert.Equal(t, "postIncidentReview", health.IssueLabelFor(health.IssueStatus("postIncidentReview")))
	assert.Equal(t, "Unknown", health.IssueLabelFor(health.IssueStatus("")))
}

func TestParseRawStatus(t *testing.T) {
	assert.Equal(t, health.StatusOperational, health.ParseRawStatus("ServiceOperational"))
	assert.Equal(t, health.StatusExtendedRecovery, health.ParseRawStatus("extendedRecovery"))
	assert.Equal(t, health.StatusUnknown, health.ParseRawStatus("somethingElse"))
}

func TestParseIssueStatus(t *testing.T) {
	assert.Equal(t, health.IssueInvestigating, health.ParseIssueStatus("Investigating"))
	assert.Equal(t, health.IssueRestored, health.ParseIssueStatus("serviceRestored"))
	assert.Equal(t, health.IssueUnknown, health.ParseIssueStatus("falsePositive"))
}
