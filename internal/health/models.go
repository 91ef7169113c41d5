// Package health contains the service-health domain model and the
// classification and ranking logic for the dashboard.
package health

import (
	"strings"
	"time"
)

// RawStatus is the status a service reports on the health overview feed.
type RawStatus string

const (
	StatusOperational      RawStatus = "serviceOperational"
	StatusDegradation      RawStatus = "serviceDegradation"
	StatusInterruption     RawStatus = "serviceInterruption"
	StatusExtendedRecovery RawStatus = "extendedRecovery"
	StatusUnknown          RawStatus = "unknown"
)

// ParseRawStatus normalizes a status string from the feed.
// Unrecognized values map to StatusUnknown.
func ParseRawStatus(s string) RawStatus {
	switch strings.ToLower(s) {
	case "serviceoperational":
		return StatusOperational
	case "servicedegradation":
		return StatusDegradation
	case "serviceinterruption":
		return StatusInterruption
	case "extendedrecovery":
		return StatusExtendedRecovery
	default:
		return StatusUnknown
	}
}

// IssueStatus is the status of an individual announced issue.
type IssueStatus string

const (
	IssueInvestigating IssueStatus = "investigating"
	IssueDegradation   IssueStatus = "serviceDegradation"
	IssueInterruption  IssueStatus = "serviceInterruption"
	IssueRestored      IssueStatus = "serviceRestored"
	IssueOperational   IssueStatus = "serviceOperational"
	IssueUnknown       IssueStatus = "unknown"
)

// ParseIssueStatus normalizes an issue status string from the feed.
func ParseIssueStatus(s string) IssueStatus {
	switch strings.ToLower(s) {
	case "investigating":
		return IssueInvestigating
	case "servicedegradation":
		return IssueDegradation
	case "serviceinterruption":
		return IssueInterruption
	case "servicerestored":
		return IssueRestored
	case "serviceoperational":
		return IssueOperational
	default:
		return IssueUnknown
	}
}

// DisplayStatus is the effective status shown on a service card. It extends
// RawStatus with an advisory tier that the feed itself never reports.
type DisplayStatus string

const (
	DisplayOperational      DisplayStatus = "serviceOperational"
	DisplayDegradation      DisplayStatus = "serviceDegradation"
	DisplayInterruption     DisplayStatus = "serviceInterruption"
	DisplayAdvisory         DisplayStatus = "advisoryIssue"
	DisplayExtendedRecovery DisplayStatus = "extendedRecovery"
	DisplayUnknown          DisplayStatus = "unknown"
)

// ServiceHealth is one entry from the health overview feed.
type ServiceHealth struct {
	// Service is the display name and grouping key (e.g. "Exchange Online").
	Service string

	// Status is the raw status reported by the feed.
	Status RawStatus
}

// Issue is one entry from the issues feed, loosely structured: the
// classification and impact fields are frequently absent.
type Issue struct {
	// Service is the affected service name, foreign key into the overview feed.
	Service string

	// Title is the issue headline.
	Title string

	// Status is the current issue status.
	Status IssueStatus

	// Classification is an optional label such as "Advisory" or "Incident".
	Classification string

	// ImpactDescription is an optional free-text impact summary.
	ImpactDescription string

	// IsResolved reports whether the publisher considers the issue closed.
	IsResolved bool

	// StartDateTime is when the issue began. May be zero.
	StartDateTime time.Time

	// LastModifiedDateTime is the last publisher update. May be zero.
	LastModifiedDateTime time.Time
}

// Date returns the timestamp used for recency decisions: the last
// modification when present, otherwise the start time.
func (i Issue) Date() time.Time {
	if !i.LastModifiedDateTime.IsZero() {
		return i.LastModifiedDateTime
	}
	return i.StartDateTime
}

// ClassifiedService is the derived, render-ready view of one service. It is
// rebuilt from scratch on every refresh cycle and never mutated in place.
type ClassifiedService struct {
	// Service is the service name.
	Service string

	// RawStatus is the status as reported by the overview feed.
	RawStatus RawStatus

	// DisplayStatus is the effective status after issue classification.
	DisplayStatus DisplayStatus

	// DisplayClass is the style class for DisplayStatus.
	DisplayClass StatusClass

	// CriticalIssues are active incidents not marked advisory, in feed order.
	CriticalIssues []Issue

	// AdvisoryIssues are active or just-resolved advisories, in feed order.
	AdvisoryIssues []Issue

	// RecentIssues are restored issues for the detail view, capped at 10.
	RecentIssues []Issue

	// Issues is the full issue list for this service, in feed order.
	Issues []Issue

	// Priority is the display rank tier, lower first. Assigned by Rank.
	Priority int
}

// Snapshot is one fetch cycle's worth of raw feed data.
type Snapshot struct {
	// Services are the overview entries.
	Services []ServiceHealth

	// Issues are all issues across services.
	Issues []Issue

	// PartialData is set when the issues feed failed and was absorbed as empty.
	PartialData bool

	// FetchedAt is when the snapshot was retrieved.
	FetchedAt time.Time
}

// IssuesByService groups the snapshot's issues by service name, preserving
// feed order within each group.
func (s *Snapshot) IssuesByService() map[string][]Issue {
	grouped := make(map[string][]Issue)
	for _, issue := range s.Issues {
		grouped[issue.Service] = append(grouped[issue.Service], issue)
	}
	return grouped
}
