package graph

import (
	"time"

	"github.com/healthboard/healthboard/internal/health"
)

// API response types (Graph serviceAnnouncement resources).

type overviewsResponse struct {
	Value []overviewData `json:"value"`
}

type overviewData struct {
	ID      string `json:"id"`
	Service string `json:"service"`
	Status  string `json:"status"`
}

type issuesResponse struct {
	Value []issueData `json:"value"`
}

type issueData struct {
	ID                   string `json:"id"`
	Service              string `json:"service"`
	Title                string `json:"title"`
	Status               string `json:"status"`
	Classification       string `json:"classification"`
	ImpactDescription    string `json:"impactDescription"`
	IsResolved           bool   `json:"isResolved"`
	StartDateTime        string `json:"startDateTime"`
	LastModifiedDateTime string `json:"lastModifiedDateTime"`
}

// toServiceHealth converts an overview entry to the domain type.
func toServiceHealth(o *overviewData) health.ServiceHealth {
	return health.ServiceHealth{
		Service: o.Service,
		Status:  health.ParseRawStatus(o.Status),
	}
}

// toIssue converts an issue entry to the domain type. Malformed timestamps
// come through as zero values; recency checks treat those as ancient.
func toIssue(i *issueData) health.Issue {
	start, _ := time.Parse(time.RFC3339, i.StartDateTime)
	modified, _ := time.Parse(time.RFC3339, i.LastModifiedDateTime)

	return health.Issue{
		Service:              i.Service,
		Title:                i.Title,
		Status:               health.ParseIssueStatus(i.Status),
		Classification:       i.Classification,
		ImpactDescription:    i.ImpactDescription,
		IsResolved:           i.IsResolved,
		StartDateTime:        start,
		LastModifiedDateTime: modified,
	}
}
