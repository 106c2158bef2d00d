package render

import (
	"errors"
	"fmt"
)

// Common errors for Render API calls
var (
	// ErrNotFound marks an upstream 404 for a specific resource.
	ErrNotFound = errors.New("not found")

	// ErrTimeout marks a request that exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrConnection marks a transport-level failure before any HTTP
	// status was received.
	ErrConnection = errors.New("could not reach the Render API")
)

// APIError is a non-2xx upstream response. 4xx statuses are caller errors
// and not worth retrying; 5xx statuses are upstream faults that a caller
// may choose to retry. The client itself never retries.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("render API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("render API returned HTTP %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match a 404 APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
