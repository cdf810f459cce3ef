package core

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the view-state controller. Transport causes are wrapped
// beneath these with %w.
var (
	ErrMountFailed  = errors.New("mount failed")
	ErrLoadFailed   = errors.New("recent load failed")
	ErrSearchFailed = errors.New("search failed")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method string
	Path   string
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Detail)
}

// Temporary reports whether retrying the same request may succeed.
func (e *APIError) Temporary() bool {
	return e.Status >= 500 || e.Status == 429
}
