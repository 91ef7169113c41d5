package models

// AutoRefreshRequest is the request body for toggling auto-refresh.
type AutoRefreshRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// AutoRefreshResponse reports the current auto-refresh state.
type AutoRefreshResponse struct {
	Enabled         bool `json:"enabled"`
	IntervalSeconds int  `json:"intervalSeconds"`
}

// DisplayModeRequest is the request body for changing the display mode.
type DisplayModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=standard kiosk compact"`
}

// DisplayModeResponse reports the active display mode.
type DisplayModeResponse struct {
	Mode string `json:"mode"`
}

// RefreshResponse reports the outcome of a manual refresh.
type RefreshResponse struct {
	FetchedAt   Timestamp `json:"fetchedAt"`
	PartialData bool      `json:"partialData"`
	Services    int       `json:"services"`
}
