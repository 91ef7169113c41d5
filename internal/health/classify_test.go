package health_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthboard/healthboard/internal/health"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestClassify_OperationalNoIssues(t *testing.T) {
	svc := health.ServiceHealth{Service: "OneDrive", Status: health.StatusOperational}

	got := health.Classify(svc, nil, testNow)

	assert.Equal(t, health.DisplayOperational, got.DisplayStatus)
	assert.Equal(t, health.ClassHealthy, got.DisplayClass)
	assert.Empty(t, got.CriticalIssues)
	assert.Empty(t, got.AdvisoryIssues)
	assert.Empty(t, got.RecentIssues)
}

func TestClassify_InterruptionWithCriticalIssue(t *testing.T) {
	svc := health.ServiceHealth{Service: "Exchange Online", Status: health.StatusInterruption}
	issues := []health.Issue{
		{
			Service: "Exchange Online",
			Title:   "Users cannot send mail",
			Status:  health.IssueInvestigating,
		},
	}

	got := health.Classify(svc, issues, testNow)

	assert.Equal(t, health.DisplayInterruption, got.DisplayStatus)
	assert.Equal(t, health.ClassIssues, got.DisplayClass)
	require.Len(t, got.CriticalIssues, 1)
	assert.Empty(t, got.AdvisoryIssues)
}

func TestClassify_IncidentStatusNeverAdvisory(t *testing.T) {
	svc := health.ServiceHealth{Service: "Teams", Status: health.StatusInterruption}
	issues := []health.Issue{
		{Service: "Teams", Title: "Calls failing", Status: health.IssueInterruption},
	}

	got := health.Classify(svc, issues, testNow)

	require.Len(t, got.CriticalIssues, 1)
	assert.Empty(t, got.AdvisoryIssues)
}

func TestClassify_ExplicitAdvisoryClassification(t *testing.T) {
	svc := health.ServiceHealth{Service: "Teams", Status: health.StatusOperational}

	// Any casing of the classification counts; title content is irrelevant.
	for _, classification := range []string{"Advisory", "advisory", "ADVISORY"} {
		issues := []health.Issue{
			{
				Service:        "Teams",
				Title:          "Some feature is changing",
				Status:         health.IssueInvestigating,
				Classification: classification,
			},
		}

		got := health.Classify(svc, issues, testNow)

		assert.Equal(t, health.DisplayAdvisory, got.DisplayStatus, "classification %q", classification)
		assert.Equal(t, health.ClassAdvisory, got.DisplayClass)
		require.Len(t, got.AdvisoryIssues, 1)
		assert.Empty(t, got.CriticalIssues)
	}
}

func TestClassify_AdvisoryByTitleAndImpact(t *testing.T) {
	svc := health.ServiceHealth{Service: "SharePoint Online", Status: health.StatusOperational}

	tests := []struct {
		name  string
		issue health.Issue
	}{
		{
			name: "advisory in title",
			issue: health.Issue{
				Service: "SharePoint Online",
				Title:   "Advisory: search indexing delayed",
				Status:  health.IssueInvestigating,
				// Not explicitly classified, so it also counts as critical.
			},
		},
		{
			name: "advisory in impact description",
			issue: health.Issue{
				Service:           "SharePoint Online",
				Title:             "Search indexing delayed",
				Status:            health.IssueInvestigating,
				ImpactDescription: "This advisory affects a subset of tenants.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := health.Classify(svc, []health.Issue{tt.issue}, testNow)
			require.Len(t, got.AdvisoryIssues, 1)
		})
	}
}

func TestClassify_ResolvedAdvisoryRecencyGate(t *testing.T) {
	svc := health.ServiceHealth{Service: "Intune", Status: health.StatusOperational}

	tests := []struct {
		name       string
		modified   time.Time
		wantShown  bool
		wantStatus health.DisplayStatus
	}{
		{
			name:       "resolved two hours ago still shows",
			modified:   testNow.Add(-2 * time.Hour),
			wantShown:  true,
			wantStatus: health.DisplayAdvisory,
		},
		{
			name:       "resolved three days ago is dropped",
			modified:   testNow.Add(-72 * time.Hour),
			wantShown:  false,
			wantStatus: health.DisplayOperational,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := []health.Issue{
				{
					Service:              "Intune",
					Title:                "Policy sync delays",
					Status:               health.IssueRestored,
					Classification:       "Advisory",
					IsResolved:           true,
					LastModifiedDateTime: tt.modified,
				},
			}

			got := health.Classify(svc, issues, testNow)

			if tt.wantShown {
				assert.Len(t, got.AdvisoryIssues, 1)
			} else {
				assert.Empty(t, got.AdvisoryIssues)
			}
			assert.Equal(t, tt.wantStatus, got.DisplayStatus)
		})
	}
}

func TestClassify_IssueDateFallsBackToStart(t *testing.T) {
	svc := health.ServiceHealth{Service: "Intune", Status: health.StatusOperational}
	issues := []health.Issue{
		{
			Service:        "Intune",
			Title:          "Enrollment advisory",
			Status:         health.IssueRestored,
			Classification: "Advisory",
			IsResolved:     true,
			StartDateTime:  testNow.Add(-3 * time.Hour),
			// No LastModifiedDateTime: StartDateTime gates recency.
		},
	}

	got := health.Classify(svc, issues, testNow)

	assert.Len(t, got.AdvisoryIssues, 1)
}

func TestClassify_DegradedWithoutIssuesFallsBackToAdvisory(t *testing.T) {
	tests := []struct {
		name   string
		status health.RawStatus
	}{
		{name: "degradation", status: health.StatusDegradation},
		{name: "extended recovery", status: health.StatusExtendedRecovery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := health.ServiceHealth{Service: "SharePoint", Status: tt.status}

			got := health.Classify(svc, nil, testNow)

			assert.Equal(t, health.DisplayAdvisory, got.DisplayStatus)
			assert.Equal(t, health.ClassAdvisory, got.DisplayClass)
		})
	}
}

func TestClassify_RecentIssuesCappedAtTen(t *testing.T) {
	svc := health.ServiceHealth{Service: "Teams", Status: health.StatusOperational}

	var issues []health.Issue
	for i := 0; i < 15; i++ {
		issues = append(issues, health.Issue{
			Service: "Teams",
			Title:   "Restored issue",
			Status:  health.IssueRestored,
		})
	}

	got := health.Classify(svc, issues, testNow)

	assert.Len(t, got.RecentIssues, 10)
}

func TestClassify_Idempotent(t *testing.T) {
	svc := health.ServiceHealth{Service: "Exchange Online", Status: health.StatusDegradation}
	issues := []health.Issue{
		{Service: "Exchange Online", Title: "Mail delays", Status: health.IssueInvestigating},
		{
			Service:        "Exchange Online",
			Title:          "Advisory on retention",
			Status:         health.IssueInvestigating,
			Classification: "Advisory",
		},
		{Service: "Exchange Online", Title: "Old problem", Status: health.IssueRestored},
	}

	first := health.Classify(svc, issues, testNow)
	second := health.Classify(svc, issues, testNow)

	assert.Equal(t, first, second)
}

func TestClassify_UnknownStatusDegrades(t *testing.T) {
	svc := health.ServiceHealth{Service: "Yammer", Status: health.ParseRawStatus("somethingNew")}

	got := health.Classify(svc, nil, testNow)

	assert.Equal(t, health.StatusUnknown, got.RawStatus)
	assert.Equal(t, health.DisplayOperational, got.DisplayStatus)
}

func TestClassifyAll_GroupsIssuesByService(t *testing.T) {
	snap := &health.Snapshot{
		Services: []health.ServiceHealth{
			{Service: "Exchange Online", Status: health.StatusInterruption},
			{Service: "Teams", Status: health.StatusOperational},
		},
		Issues: []health.Issue{
			{Service: "Exchange Online", Title: "Mail down", Status: health.IssueInvestigating},
			{Service: "Teams", Title: "Advisory note", Status: health.IssueInvestigating, Classification: "Advisory"},
		},
	}

	got := health.ClassifyAll(snap, testNow)

	require.Len(t, got, 2)
	assert.Len(t, got[0].CriticalIssues, 1)
	assert.Len(t, got[1].AdvisoryIssues, 1)
}
