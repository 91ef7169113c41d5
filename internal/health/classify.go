package health

import (
	"strings"
	"time"
)

const (
	// resolvedAdvisoryWindow is how long a resolved advisory keeps showing.
	resolvedAdvisoryWindow = 24 * time.Hour

	// maxRecentIssues caps the recently-resolved list in the detail view.
	maxRecentIssues = 10
)

// Classify derives the effective display state for one service from its raw
// status and associated issues. Pure: calls with identical inputs yield
// identical results, and it never fails: unrecognized enum values degrade to
// the unknown tier through the status tables.
func Classify(svc ServiceHealth, issues []Issue, now time.Time) ClassifiedService {
	critical := criticalIssues(issues)
	advisory := advisoryIssues(issues, now)
	recent := recentIssues(issues)

	var displayStatus DisplayStatus
	switch {
	case len(critical) > 0:
		// Active critical issues: the raw feed status stands.
		displayStatus = DisplayStatus(svc.Status)
	case len(advisory) > 0:
		displayStatus = DisplayAdvisory
	case svc.Status == StatusDegradation || svc.Status == StatusExtendedRecovery:
		// The overview feed is authoritative when the issues feed has no
		// corroborating entries for a degraded service.
		displayStatus = DisplayAdvisory
	default:
		displayStatus = DisplayOperational
	}

	return ClassifiedService{
		Service:        svc.Service,
		RawStatus:      svc.Status,
		DisplayStatus:  displayStatus,
		DisplayClass:   ClassFor(displayStatus),
		CriticalIssues: critical,
		AdvisoryIssues: advisory,
		RecentIssues:   recent,
		Issues:         issues,
	}
}

// ClassifyAll classifies every service in the snapshot, joining issues to
// services by name. Services keep their feed order; Rank orders them.
func ClassifyAll(snap *Snapshot, now time.Time) []ClassifiedService {
	grouped := snap.IssuesByService()
	classified := make([]ClassifiedService, 0, len(snap.Services))
	for _, svc := range snap.Services {
		classified = append(classified, Classify(svc, grouped[svc.Service], now))
	}
	return classified
}

// criticalIssues selects issues with an active incident status that are not
// explicitly classified as advisories.
func criticalIssues(issues []Issue) []Issue {
	var out []Issue
	for _, issue := range issues {
		if hasIncidentStatus(issue) && !isExplicitlyAdvisory(issue) {
			out = append(out, issue)
		}
	}
	return out
}

// advisoryIssues selects advisory-flavored issues that are either still
// active or resolved within the last day.
func advisoryIssues(issues []Issue, now time.Time) []Issue {
	var out []Issue
	for _, issue := range issues {
		if !looksAdvisory(issue) {
			continue
		}
		if isActive(issue) {
			out = append(out, issue)
			continue
		}
		if issue.IsResolved && now.Sub(issue.Date()) <= resolvedAdvisoryWindow {
			out = append(out, issue)
		}
	}
	return out
}

// recentIssues selects restored issues for the detail view, keeping feed
// order and capping the list.
func recentIssues(issues []Issue) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Status == IssueRestored || issue.Status == IssueOperational {
			out = append(out, issue)
			if len(out) == maxRecentIssues {
				break
			}
		}
	}
	return out
}

func hasIncidentStatus(issue Issue) bool {
	return issue.Status == IssueInvestigating ||
		issue.Status == IssueDegradation ||
		issue.Status == IssueInterruption
}

func isExplicitlyAdvisory(issue Issue) bool {
	return strings.EqualFold(issue.Classification, "advisory")
}

// looksAdvisory matches the explicit classification plus the title and
// impact-description heuristics the publisher's data makes necessary.
func looksAdvisory(issue Issue) bool {
	if isExplicitlyAdvisory(issue) {
		return true
	}
	if strings.Contains(strings.ToLower(issue.Title), "advisory") {
		return true
	}
	return strings.Contains(strings.ToLower(issue.ImpactDescription), "advisory")
}

// isActive reports whether an issue is still open: not resolved and not in a
// restored or operational terminal status.
func isActive(issue Issue) bool {
	return !issue.IsResolved &&
		issue.Status != IssueRestored &&
		issue.Status != IssueOperational
}
