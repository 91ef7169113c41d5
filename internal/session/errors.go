package session

import "errors"

// ErrInvalidDisplayMode is returned for a mode outside the enumerated set.
var ErrInvalidDisplayMode = errors.New("invalid display mode")
