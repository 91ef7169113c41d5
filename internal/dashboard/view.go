// Package dashboard builds the view models rendered by dashboard clients.
// Everything here is a pure function of classified data: what would be shown
// is testable without any UI toolkit.
package dashboard

import (
	"time"

	"github.com/healthboard/healthboard/internal/health"
	"github.com/healthboard/healthboard/internal/prefs"
)

// GridView is the whole dashboard: ordered service cards plus chrome state.
type GridView struct {
	// Cards are the service cards in display order (ranker order, exactly).
	Cards []Card `json:"cards"`

	// Mode is the active display mode.
	Mode prefs.DisplayMode `json:"mode"`

	// Controls describes the control bar; nil in kiosk mode.
	Controls *Controls `json:"controls,omitempty"`

	// Compact condenses the cards (compact mode).
	Compact bool `json:"compact"`

	// LastUpdated is when the shown data was fetched; zero before the first
	// successful cycle.
	LastUpdated time.Time `json:"lastUpdated,omitzero"`

	// Error carries the failure panel for the last cycle, if it failed.
	Error *ErrorPanel `json:"error,omitempty"`

	// PartialData is set when the issues feed was unavailable this cycle.
	PartialData bool `json:"partialData,omitempty"`
}

// Controls describes the interactive control bar.
type Controls struct {
	// AutoRefresh reports whether the refresh timer is running.
	AutoRefresh bool `json:"autoRefresh"`

	// DisplayMode is the selected mode.
	DisplayMode prefs.DisplayMode `json:"displayMode"`

	// ModeOptions enumerates the selectable modes.
	ModeOptions []prefs.DisplayMode `json:"modeOptions"`

	// SignedInAs is the admin identity, when known.
	SignedInAs string `json:"signedInAs,omitempty"`
}

// ErrorPanel is the inline failure panel.
type ErrorPanel struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Card is one service summary card.
type Card struct {
	// Service is the service name.
	Service string `json:"service"`

	// Status is the effective display status.
	Status health.DisplayStatus `json:"status"`

	// Class is the style class for the card and its indicator.
	Class health.StatusClass `json:"class"`

	// Icon is the status indicator glyph.
	Icon string `json:"icon"`

	// Label is the human-readable status text.
	Label string `json:"label"`

	// Summary is the issue-count line (empty when the card has no issues).
	Summary string `json:"summary,omitempty"`

	// Issues previews up to two issue titles plus an overflow line.
	Issues []CardIssue `json:"issues,omitempty"`

	// Priority is the rank tier the card sorted into.
	Priority int `json:"priority"`
}

// CardIssue is one line of a card's issue preview.
type CardIssue struct {
	// Title is the line text.
	Title string `json:"title"`

	// Critical marks critical issue lines (rendered emphasized).
	Critical bool `json:"critical,omitempty"`
}

// DetailView is the per-service detail (the modal in the hosted dashboard).
type DetailView struct {
	// Service is the service name.
	Service string `json:"service"`

	// Status block reflects the RAW feed status, as the admin center does.
	Status string `json:"status"`
	Class  string `json:"class"`
	Icon   string `json:"icon"`
	Label  string `json:"label"`

	// Critical, Advisory, and Recent are the partitioned issue sections.
	Critical []DetailIssue `json:"critical,omitempty"`
	Advisory []DetailIssue `json:"advisory,omitempty"`
	Recent   []DetailIssue `json:"recent,omitempty"`

	// NoIssues is set when all three sections are empty.
	NoIssues bool `json:"noIssues,omitempty"`
}

// DetailIssue is one issue entry in a detail section.
type DetailIssue struct {
	Title string `json:"title"`

	// StatusLabel and StatusClass style the issue's status badge.
	StatusLabel string `json:"statusLabel"`
	StatusClass string `json:"statusClass"`

	// Impact is the optional impact description.
	Impact string `json:"impact,omitempty"`

	// LastUpdated is the optional last-modified timestamp.
	LastUpdated time.Time `json:"lastUpdated,omitzero"`
}
