package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent login flow failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCode indicates a submission was attempted without a code.
	ErrEmptyCode = errors.New("authorization code is empty")

	// ErrInvalidHubResponse indicates the hub response could not be decoded.
	ErrInvalidHubResponse = errors.New("invalid hub response")
)

// CallbackError is returned when the callback endpoint rejects a submission.
// It is the only error kind the login panel renders.
type CallbackError struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// StatusText is the HTTP reason phrase.
	StatusText string
	// Details is optional human readable text from the server.
	Details string
	// Err is the underlying transport error, if any.
	Err error
}

// NewCallbackError creates a CallbackError from a response status.
func NewCallbackError(status int, statusText, details string) *CallbackError {
	return &CallbackError{
		Status:     status,
		StatusText: statusText,
		Details:    details,
	}
}

// Error implements error.
func (e *CallbackError) Error() string {
	var b strings.Builder
	b.WriteString(e.Headline())
	if e.Details != "" {
		b.WriteString(" ")
		b.WriteString(e.Details)
	}
	return b.String()
}

// Headline returns the summary line shown to the user, e.g. "Error 403: Forbidden.".
func (e *CallbackError) Headline() string {
	return fmt.Sprintf("Error %d: %s.", e.Status, e.StatusText)
}

// Unwrap returns the underlying transport error.
func (e *CallbackError) Unwrap() error {
	return e.Err
}

// AsCallbackError extracts a CallbackError from err.
func AsCallbackError(err error) (*CallbackError, bool) {
	var cbErr *CallbackError
	if errors.As(err, &cbErr) {
		return cbErr, true
	}
	return nil, false
}
