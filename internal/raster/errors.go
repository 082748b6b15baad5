package raster

import "errors"

// Failure classes surfaced by Run. Wrapped with context at the point of
// failure; callers classify with errors.Is.
var (
	ErrInputNotFound = errors.New("input PDF not found")
	ErrOpenDocument  = errors.New("cannot open PDF document")
	ErrEncodeImage   = errors.New("cannot encode page image")
)
