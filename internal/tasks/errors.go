package tasks

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// RemoteAPIError is a structured error reported by the remote task API.
type RemoteAPIError struct {
	StatusCode int
	Message    string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("remote task API error (status %d): %s", e.StatusCode, e.Message)
}

// TransportError is a network-level failure reaching the remote API.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ListNotFoundError reports a list selector that resolved to nothing.
// Distinct from transient failures: this is a configuration error in the
// block parameters.
type ListNotFoundError struct {
	Query string
}

func (e *ListNotFoundError) Error() string {
	return fmt.Sprintf("task list not found: %q", e.Query)
}

// wrapError maps an SDK error onto the package taxonomy. Structured API
// errors keep the remote status and message; everything else, including
// auth failures surfaced through the transport, is wrapped so callers can
// still reach the cause with errors.Is.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &RemoteAPIError{StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return &TransportError{Cause: err}
}
