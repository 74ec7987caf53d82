package netstorage

import (
	"errors"
	"net/http"
	"strconv"
)

var (
	// ErrConfigRequired is returned when a client is constructed without a config.
	ErrConfigRequired = errors.New("config is required")
	// ErrInvalidDate is returned when mtime is given a zero time.
	ErrInvalidDate = errors.New("mtime requires a valid date")
	// ErrEmptyPath is returned when an operation is given an empty path.
	ErrEmptyPath = errors.New("path is required")
	// ErrSourceDrained is returned when an upload source is opened twice.
	ErrSourceDrained = errors.New("source already drained")
)

// APIError represents a non-2xx response from the storage service.
// Body is only populated when the client is in verbose mode.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := "server error: " + strconv.Itoa(e.StatusCode)
	if e.Body != "" {
		msg += " - " + e.Body
	}
	return msg
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict returns true if the error is a 409, meaning the target
// already exists.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the remote path does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrConflict is returned when the remote path already exists (409).
	// Directory creation treats this as a successful no-op.
	ErrConflict = &APIError{StatusCode: http.StatusConflict}

	// ErrUnauthorized is returned when signature verification fails (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}
)
