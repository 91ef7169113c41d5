// Package prefs persists small user preferences, currently the dashboard
// display mode.
package prefs

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("preference not found")

// DisplayModeKey is the key under which the display mode is stored.
const DisplayModeKey = "displayMode"

// DisplayMode is a dashboard presentation mode.
type DisplayMode string

const (
	ModeStandard DisplayMode = "standard"
	ModeKiosk    DisplayMode = "kiosk"
	ModeCompact  DisplayMode = "compact"
)

// ValidDisplayMode reports whether mode is one of the enumerated modes.
func ValidDisplayMode(mode DisplayMode) bool {
	switch mode {
	case ModeStandard, ModeKiosk, ModeCompact:
		return true
	default:
		return false
	}
}

// Store is a key-value string store surviving restarts.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value for key.
	Set(ctx context.Context, key, value string) error
}
