package dashboard_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthboard/healthboard/internal/dashboard"
	"github.com/healthboard/healthboard/internal/health"
	"github.com/healthboard/healthboard/internal/prefs"
)

var renderNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func classified(svc health.ServiceHealth, issues ...health.Issue) health.ClassifiedService {
	return health.Classify(svc, issues, renderNow)
}

func criticalIssue(service, title string) health.Issue {
	return health.Issue{Service: service, Title: title, Status: health.IssueInvestigating}
}

func advisoryIssue(service, title string) health.Issue {
	return health.Issue{
		Service:        service,
		Title:          title,
		Status:         health.IssueInvestigating,
		Classification: "Advisory",
	}
}

func TestRenderGrid_CardOrderMatchesInput(t *testing.T) {
	ranked := health.Rank([]health.ClassifiedService{
		classified(health.ServiceHealth{Service: "OneDrive", Status: health.StatusOperational}),
		classified(health.ServiceHealth{Service: "Exchange Online", Status: health.StatusInterruption}),
		classified(health.ServiceHealth{Service: "SharePoint", Status: health.StatusDegradation}),
	})

	view := dashboard.RenderGrid(ranked, dashboard.GridOptions{Mode: prefs.ModeStandard})

	require.Len(t, view.Cards, 3)
	assert.Equal(t, "Exchange Online", view.Cards[0].Service)
	assert.Equal(t, "SharePoint", view.Cards[1].Service)
	assert.Equal(t, "OneDrive", view.Cards[2].Service)
}

func TestRenderGrid_HealthyCard(t *testing.T) {
	svc := classified(health.ServiceHealth{Service: "OneDrive", Status: health.StatusOperational})

	view := dashboard.RenderGrid([]health.ClassifiedService{svc}, dashboard.GridOptions{})

	card := view.Cards[0]
	assert.Equal(t, health.ClassHealthy, card.Class)
	assert.Equal(t, "✓", card.Icon)
	assert.Equal(t, "Service Operational", card.Label)
	assert.Empty(t, card.Summary)
	assert.Empty(t, card.Issues)
}

func TestRenderGrid_SummaryCounts(t *testing.T) {
	tests := []struct {
		name    string
		service health.ClassifiedService
		want    string
	}{
		{
			name: "single critical",
			service: classified(
				health.ServiceHealth{Service: "Exchange Online", Status: health.StatusInterruption},
				criticalIssue("Exchange Online", "Mail flow delayed"),
			),
			want: "1 active issue",
		},
		{
			name: "critical and advisory",
			service: classified(
				health.ServiceHealth{Service: "Teams", Status: health.StatusDegradation},
				criticalIssue("Teams", "Calls dropping"),
				criticalIssue("Teams", "Chat lag"),
				advisoryIssue("Teams", "Upcoming change"),
			),
			want: "2 active issues, 1 advisory item",
		},
		{
			name: "degraded with no issue entries",
			service: classified(
				health.ServiceHealth{Service: "SharePoint", Status: health.StatusDegradation},
			),
			want: "Service experiencing issues",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := dashboard.RenderGrid([]health.ClassifiedService{tt.service}, dashboard.GridOptions{})
			assert.Equal(t, tt.want, view.Cards[0].Summary)
		})
	}
}

func TestRenderGrid_IssuePreviewAndOverflow(t *testing.T) {
	svc := classified(
		health.ServiceHealth{Service: "Teams", Status: health.StatusInterruption},
		criticalIssue("Teams", "first"),
		criticalIssue("Teams", "second"),
		criticalIssue("Teams", "third"),
		advisoryIssue("Teams", "advisory one"),
	)

	view := dashboard.RenderGrid([]health.ClassifiedService{svc}, dashboard.GridOptions{})

	issues := view.Cards[0].Issues
	require.Len(t, issues, 3)
	assert.Equal(t, dashboard.CardIssue{Title: "first", Critical: true}, issues[0])
	assert.Equal(t, dashboard.CardIssue{Title: "second", Critical: true}, issues[1])
	assert.Equal(t, "... and 2 more", issues[2].Title)
}

func TestRenderGrid_AdvisoryFillsPreview(t *testing.T) {
	svc := classified(
		health.ServiceHealth{Service: "Teams", Status: health.StatusOperational},
		criticalIssue("Teams", "only critical"),
		advisoryIssue("Teams", "first advisory"),
		advisoryIssue("Teams", "second advisory"),
	)

	view := dashboard.RenderGrid([]health.ClassifiedService{svc}, dashboard.GridOptions{})

	issues := view.Cards[0].Issues
	require.Len(t, issues, 3)
	assert.True(t, issues[0].Critical)
	assert.Equal(t, "first advisory", issues[1].Title)
	assert.False(t, issues[1].Critical)
	assert.Equal(t, "... and 1 more", issues[2].Title)
}

func TestRenderGrid_DegradedFallbackLine(t *testing.T) {
	svc := classified(health.ServiceHealth{Service: "SharePoint", Status: health.StatusExtendedRecovery})

	view := dashboard.RenderGrid([]health.ClassifiedService{svc}, dashboard.GridOptions{})

	issues := view.Cards[0].Issues
	require.Len(t, issues, 1)
	assert.Equal(t, "Check admin center for details", issues[0].Title)
}

func TestRenderGrid_Modes(t *testing.T) {
	svc := classified(health.ServiceHealth{Service: "OneDrive", Status: health.StatusOperational})
	services := []health.ClassifiedService{svc}

	standard := dashboard.RenderGrid(services, dashboard.GridOptions{
		Mode:        prefs.ModeStandard,
		AutoRefresh: true,
		SignedInAs:  "admin@contoso.com",
	})
	require.NotNil(t, standard.Controls)
	assert.True(t, standard.Controls.AutoRefresh)
	assert.Equal(t, "admin@contoso.com", standard.Controls.SignedInAs)
	assert.False(t, standard.Compact)

	kiosk := dashboard.RenderGrid(services, dashboard.GridOptions{Mode: prefs.ModeKiosk})
	assert.Nil(t, kiosk.Controls, "kiosk mode hides the control bar")

	compact := dashboard.RenderGrid(services, dashboard.GridOptions{Mode: prefs.ModeCompact})
	assert.True(t, compact.Compact)

	// Unknown modes render as standard.
	fallback := dashboard.RenderGrid(services, dashboard.GridOptions{Mode: prefs.DisplayMode("weird")})
	assert.Equal(t, prefs.ModeStandard, fallback.Mode)
}

func TestRenderGrid_ErrorPanel(t *testing.T) {
	view := dashboard.RenderGrid(nil, dashboard.GridOptions{
		Err: errors.New("graph returned HTTP 503: 503 Service Unavailable"),
	})

	assert.Empty(t, view.Cards)
	require.NotNil(t, view.Error)
	assert.Equal(t, "Failed to load service health data", view.Error.Title)
	assert.Contains(t, view.Error.Message, "503")
}

func TestRenderDetail_Sections(t *testing.T) {
	impact := health.Issue{
		Service:              "Exchange Online",
		Title:                "Mail queued",
		Status:               health.IssueInvestigating,
		ImpactDescription:    "Some users see delays.",
		LastModifiedDateTime: renderNow.Add(-time.Hour),
	}
	restored := health.Issue{
		Service:              "Exchange Online",
		Title:                "Old outage",
		Status:               health.IssueRestored,
		LastModifiedDateTime: renderNow.Add(-48 * time.Hour),
	}
	svc := classified(
		health.ServiceHealth{Service: "Exchange Online", Status: health.StatusDegradation},
		impact,
		advisoryIssue("Exchange Online", "Retention advisory"),
		restored,
	)

	view := dashboard.RenderDetail(svc)

	// Header reflects the raw feed status.
	assert.Equal(t, string(health.StatusDegradation), view.Status)
	assert.Equal(t, "degradation", view.Class)
	assert.Equal(t, "Service Degradation", view.Label)

	require.Len(t, view.Critical, 1)
	assert.Equal(t, "Investigating", view.Critical[0].StatusLabel)
	assert.Equal(t, "Some users see delays.", view.Critical[0].Impact)
	assert.Equal(t, renderNow.Add(-time.Hour), view.Critical[0].LastUpdated)

	require.Len(t, view.Advisory, 1)
	assert.Equal(t, "Advisory", view.Advisory[0].StatusLabel)

	require.Len(t, view.Recent, 1)
	assert.Equal(t, "Restored", view.Recent[0].StatusLabel)

	assert.False(t, view.NoIssues)
}

func TestRenderDetail_NoIssues(t *testing.T) {
	svc := classified(health.ServiceHealth{Service: "OneDrive", Status: health.StatusOperational})

	view := dashboard.RenderDetail(svc)

	assert.True(t, view.NoIssues)
	assert.Empty(t, view.Critical)
	assert.Empty(t, view.Advisory)
	assert.Empty(t, view.Recent)
}
