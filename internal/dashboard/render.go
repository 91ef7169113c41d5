package dashboard

import (
	"fmt"
	"time"

	"github.com/healthboard/healthboard/internal/health"
	"github.com/healthboard/healthboard/internal/prefs"
)

// cardIssuePreview is how many issue titles a card shows before overflowing
// into an "and N more" line.
const cardIssuePreview = 2

// GridOptions carries the chrome state rendered alongside the cards.
type GridOptions struct {
	Mode        prefs.DisplayMode
	AutoRefresh bool
	LastUpdated time.Time
	PartialData bool
	SignedInAs  string

	// Err is the last cycle's failure, rendered as an inline panel.
	Err error
}

// RenderGrid builds the dashboard view for ranked services. Card order is
// exactly the input order.
func RenderGrid(services []health.ClassifiedService, opts GridOptions) GridView {
	mode := opts.Mode
	if !prefs.ValidDisplayMode(mode) {
		mode = prefs.ModeStandard
	}

	view := GridView{
		Cards:       make([]Card, 0, len(services)),
		Mode:        mode,
		Compact:     mode == prefs.ModeCompact,
		LastUpdated: opts.LastUpdated,
		PartialData: opts.PartialData,
	}

	// Kiosk mode strips the control bar for unattended displays.
	if mode != prefs.ModeKiosk {
		view.Controls = &Controls{
			AutoRefresh: opts.AutoRefresh,
			DisplayMode: mode,
			ModeOptions: []prefs.DisplayMode{prefs.ModeStandard, prefs.ModeKiosk, prefs.ModeCompact},
			SignedInAs:  opts.SignedInAs,
		}
	}

	if opts.Err != nil {
		view.Error = &ErrorPanel{
			Title:   "Failed to load service health data",
			Message: opts.Err.Error(),
		}
	}

	for _, svc := range services {
		view.Cards = append(view.Cards, renderCard(svc))
	}

	return view
}

func renderCard(svc health.ClassifiedService) Card {
	card := Card{
		Service:  svc.Service,
		Status:   svc.DisplayStatus,
		Class:    svc.DisplayClass,
		Icon:     health.IconFor(svc.DisplayStatus),
		Label:    health.LabelFor(svc.DisplayStatus),
		Priority: svc.Priority,
	}

	critical := len(svc.CriticalIssues)
	advisory := len(svc.AdvisoryIssues)
	degradedFeed := svc.RawStatus == health.StatusDegradation || svc.RawStatus == health.StatusExtendedRecovery

	if critical == 0 && advisory == 0 && !degradedFeed {
		return card
	}

	card.Summary = summaryLine(critical, advisory)
	card.Issues = previewIssues(svc, critical, advisory, degradedFeed)
	return card
}

func summaryLine(critical, advisory int) string {
	switch {
	case critical > 0 && advisory > 0:
		return fmt.Sprintf("%s, %s", countPhrase(critical, "active issue", "active issues"),
			countPhrase(advisory, "advisory item", "advisory items"))
	case critical > 0:
		return countPhrase(critical, "active issue", "active issues")
	case advisory > 0:
		return countPhrase(advisory, "advisory item", "advisory items")
	default:
		return "Service experiencing issues"
	}
}

func countPhrase(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// previewIssues lists the first two issue titles, critical before advisory,
// with an overflow line for the rest.
func previewIssues(svc health.ClassifiedService, critical, advisory int, degradedFeed bool) []CardIssue {
	var lines []CardIssue

	for i := 0; i < critical && i < cardIssuePreview; i++ {
		lines = append(lines, CardIssue{Title: svc.CriticalIssues[i].Title, Critical: true})
	}
	for i := 0; i < advisory && len(lines) < cardIssuePreview; i++ {
		lines = append(lines, CardIssue{Title: svc.AdvisoryIssues[i].Title})
	}

	if total := critical + advisory; total > cardIssuePreview {
		lines = append(lines, CardIssue{Title: fmt.Sprintf("... and %d more", total-cardIssuePreview)})
	}

	if critical == 0 && advisory == 0 && degradedFeed {
		lines = append(lines, CardIssue{Title: "Check admin center for details"})
	}

	return lines
}

// RenderDetail builds the per-service detail view. The status block shows
// the raw feed status; the sections come from the classifier's buckets.
func RenderDetail(svc health.ClassifiedService) DetailView {
	rawDisplay := health.DisplayStatus(svc.RawStatus)

	view := DetailView{
		Service: svc.Service,
		Status:  string(svc.RawStatus),
		Class:   string(health.ClassFor(rawDisplay)),
		Icon:    health.IconFor(rawDisplay),
		Label:   health.LabelFor(rawDisplay),
	}

	for _, issue := range svc.CriticalIssues {
		view.Critical = append(view.Critical, DetailIssue{
			Title:       issue.Title,
			StatusLabel: health.IssueLabelFor(issue.Status),
			StatusClass: health.IssueClassFor(issue.Status),
			Impact:      issue.ImpactDescription,
			LastUpdated: issue.LastModifiedDateTime,
		})
	}

	for _, issue := range svc.AdvisoryIssues {
		view.Advisory = append(view.Advisory, DetailIssue{
			Title:       issue.Title,
			StatusLabel: "Advisory",
			StatusClass: "advisory",
			Impact:      issue.ImpactDescription,
			LastUpdated: issue.LastModifiedDateTime,
		})
	}

	for _, issue := range svc.RecentIssues {
		view.Recent = append(view.Recent, DetailIssue{
			Title:       issue.Title,
			StatusLabel: health.IssueLabelFor(issue.Status),
			StatusClass: health.IssueClassFor(issue.Status),
			LastUpdated: issue.LastModifiedDateTime,
		})
	}

	view.NoIssues = len(view.Critical) == 0 && len(view.Advisory) == 0 && len(view.Recent) == 0
	return view
}
