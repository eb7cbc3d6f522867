package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNotFound indicates the requested movie does not exist
	ErrNotFound = errors.New("movie not found")
	// ErrNetwork indicates the request could not complete or the response was unreadable
	ErrNetwork = errors.New("tmdb request failed")
)

// statusResourceNotFound is TMDB's status_code for an unknown resource
const statusResourceNotFound = 34

// Kind classifies a lookup failure
type Kind int

const (
	KindNone Kind = iota
	KindNetwork
	KindRemote
	KindNotFound
)

// String returns a readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network"
	case KindRemote:
		return "remote"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// APIError represents a failure envelope returned by TMDB
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.Code == statusResourceNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// NotFoundError is returned by GetByID when the provider does not know the identifier.
// It matches ErrNotFound with errors.Is and carries the provider's message, if any.
type NotFoundError struct {
	ID      string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("movie %q not found", e.ID)
	}
	return fmt.Sprintf("movie %q not found: %s", e.ID, e.Message)
}

// Is reports whether target is ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Classify returns the failure kind of err
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindRemote
	}
	return KindNetwork
}

// networkError wraps a transport or decoding failure so it matches ErrNetwork
func networkError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrNetwork, op, err)
}
