package suppliers

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when an operation is invoked on a supplier
// that has no credentials loaded. Callers should treat it as terminal.
var ErrNotConfigured = errors.New("supplier not configured")

// NoProviderError means neither supplier could serve the operation.
type NoProviderError struct {
	Op string
}

func (e *NoProviderError) Error() string {
	return fmt.Sprintf("no provider available for %s", e.Op)
}

// StatusError is a non-2xx upstream response, normalized into a typed error
// carrying the numeric status and the raw response body.
type StatusError struct {
	Provider string
	Op       string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: upstream status %d: %s", e.Provider, e.Op, e.Status, e.Body)
}

// StatusOf extracts the upstream HTTP status from err, or 0 if err is not a
// StatusError.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
