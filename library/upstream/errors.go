package upstream

import (
	"fmt"
	"strings"
)

// Violation describes a single failed cross-field constraint.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated constraint found before a request
// is built. No network call is made when this error is returned.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-violation ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Message: message}}}
}

// UpstreamError reports a completed outbound call that returned a non-2xx
// status. The raw response body is preserved verbatim.
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// TransportError reports an outbound call that never completed, such as a DNS
// failure, refused connection, or timeout before any response arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
