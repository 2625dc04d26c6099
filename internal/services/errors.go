// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned before any network call when no admin
	// token is available.
	ErrUnauthenticated = errors.New("admin token is missing or expired")
	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	ErrNotReady        = errors.New("collection is not loaded")
	ErrBusy            = errors.New("another change to this collection is in flight")
	ErrNotConfirmed    = errors.New("operation was not confirmed")
	ErrBannerNotFound  = errors.New("banner not found")
	ErrProductNotFound = errors.New("product not found in catalog")
)

// errNoop aborts a mutation without error, e.g. adding an item that is
// already present.
var errNoop = errors.New("no-op")

type ValidationError struct {
	Field      string
	MessageKey string
	// Args fill the placeholders of MessageKey.
	Args    []interface{}
	Details interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s", e.Field)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NetworkError covers transport failures and non-success responses from
// the homepage backend.
type NetworkError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: non-success status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Detail is the most specific human readable reason: the backend's own
// message when it sent one, the transport error otherwise.
func (e *NetworkError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	}
	return "request failed"
}

func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// DecorationError records a price lookup that failed for a single offer.
// It is logged and never returned to callers.
type DecorationError struct {
	ProductID string
	Err       error
}

func (e *DecorationError) Error() string {
	return fmt.Sprintf("price lookup for product %s: %v", e.ProductID, e.Err)
}

func (e *DecorationError) Unwrap() error {
	return e.Err
}
