package health

import "strings"

// StatusClass is the style class attached to a card or status indicator.
type StatusClass string

const (
	ClassHealthy     StatusClass = "healthy"
	ClassDegradation StatusClass = "degradation"
	ClassIssues      StatusClass = "issues"
	ClassAdvisory    StatusClass = "advisory"
	ClassUnknown     StatusClass = "unknown"
)

// ClassFor maps a display status to its style class. The lookup is total:
// anything unrecognized maps to ClassUnknown.
func ClassFor(status DisplayStatus) StatusClass {
	switch strings.ToLower(string(status)) {
	case "serviceoperational":
		return ClassHealthy
	case "servicedegradation":
		return ClassDegradation
	case "serviceinterruption":
		return ClassIssues
	case "advisoryissue":
		return ClassAdvisory
	case "extendedrecovery":
		return ClassAdvisory
	default:
		return ClassUnknown
	}
}

// IconFor maps a display status to its indicator glyph.
func IconFor(status DisplayStatus) string {
	switch strings.ToLower(string(status)) {
	case "serviceoperational":
		return "✓"
	case "servicedegradation":
		return "⚠"
	case "serviceinterruption":
		return "!"
	case "advisoryissue":
		return "⚠"
	case "extendedrecovery":
		return "⚠"
	default:
		return "?"
	}
}

// LabelFor maps a display status to its human-readable label.
func LabelFor(status DisplayStatus) string {
	switch strings.ToLower(string(status)) {
	case "serviceoperational":
		return "Service Operational"
	case "servicedegradation":
		return "Service Degradation"
	case "serviceinterruption":
		return "Service Interruption"
	case "advisoryissue":
		return "Service Advisory"
	case "extendedrecovery":
		return "Extended Recovery"
	default:
		return "Status Unknown"
	}
}

// IssueClassFor maps an issue status to the style class used in the detail
// view. This is a separate, smaller table than ClassFor.
func IssueClassFor(status IssueStatus) string {
	switch strings.ToLower(string(status)) {
	case "investigating":
		return "investigating"
	case "serviceoperational":
		return "operational"
	case "servicerestored":
		return "restored"
	case "servicedegradation":
		return "degradation"
	default:
		return "unknown"
	}
}

// IssueLabelFor maps an issue status to its human-readable label. Unmapped
// statuses fall back to the raw value so nothing renders blank.
func IssueLabelFor(status IssueStatus) string {
	switch strings.ToLower(string(status)) {
	case "investigating":
		return "Investigating"
	case "serviceoperational":
		return "Operational"
	case "servicerestored":
		return "Restored"
	case "servicedegradation":
		return "Degraded"
	default:
		if status == "" {
			return "Unknown"
		}
		return string(status)
	}
}
