package health

import (
	"sort"
	"strings"
)

// Priority tiers, lower shown first.
const (
	PriorityInterruption        = 1
	PriorityDegradation         = 2
	PriorityExtendedRecovery    = 3
	PriorityCriticalOperational = 4
	PriorityAdvisory            = 5
	PriorityAdvisoryOperational = 6
	PriorityHealthy             = 7
	PriorityUnknown             = 8
)

// Rank assigns each service its priority tier and returns the services in
// display order: priority ascending, then service name ascending. The sort is
// stable and the input slice is not modified.
func Rank(services []ClassifiedService) []ClassifiedService {
	ranked := make([]ClassifiedService, len(services))
	copy(ranked, services)

	for i := range ranked {
		ranked[i].Priority = priorityFor(ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Priority != ranked[j].Priority {
			return ranked[i].Priority < ranked[j].Priority
		}
		return ranked[i].Service < ranked[j].Service
	})

	return ranked
}

// priorityFor computes the display tier from the RAW feed status. For an
// operational service the tier depends on its issue mix, recomputed here with
// a stricter activity predicate than Classify uses: a resolved advisory from
// the last day still shows on a card but does not change the card's rank.
func priorityFor(svc ClassifiedService) int {
	switch strings.ToLower(string(svc.RawStatus)) {
	case "serviceinterruption":
		return PriorityInterruption
	case "servicedegradation":
		return PriorityDegradation
	case "extendedrecovery":
		return PriorityExtendedRecovery
	case "serviceoperational":
		if hasCriticalIssue(svc.Issues) {
			return PriorityCriticalOperational
		}
		if hasActiveAdvisory(svc.Issues) {
			return PriorityAdvisoryOperational
		}
		return PriorityHealthy
	case "advisoryissue":
		return PriorityAdvisory
	default:
		return PriorityUnknown
	}
}

func hasCriticalIssue(issues []Issue) bool {
	for _, issue := range issues {
		if hasIncidentStatus(issue) && !isExplicitlyAdvisory(issue) {
			return true
		}
	}
	return false
}

// hasActiveAdvisory deliberately omits the resolved-but-recent branch that
// advisoryIssues applies; see priorityFor.
func hasActiveAdvisory(issues []Issue) bool {
	for _, issue := range issues {
		if looksAdvisory(issue) && isActive(issue) {
			return true
		}
	}
	return false
}
