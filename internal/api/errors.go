package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure into the taxonomy the stores act on.
type Kind string

const (
	KindNetwork    Kind = "network"    // transport failure, no HTTP response
	KindAuth       Kind = "auth"       // 401 / invalid credentials
	KindValidation Kind = "validation" // bad input, local or 400/422
	KindConflict   Kind = "conflict"   // duplicate resource, 409
	KindNotFound   Kind = "not_found"  // 404
	KindServer     Kind = "server"     // backend 5xx
)

// Error is the single error type escaping this package. Status is 0 for
// transport failures and locally raised validation errors.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// NewValidation raises a local validation failure, before any network call.
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), err: err}
}

// fromStatus maps a non-2xx HTTP status to the taxonomy.
func fromStatus(status int, message string) *Error {
	var kind Kind
	switch {
	case status == http.StatusUnauthorized:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusConflict:
		kind = KindConflict
	case status >= 500:
		kind = KindServer
	default:
		kind = KindValidation // remaining 4xx: the request itself was bad
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

func is(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsNetwork reports a transport-level failure.
func IsNetwork(err error) bool { return is(err, KindNetwork) }

// IsAuth reports a 401 / bad-credentials failure.
func IsAuth(err error) bool { return is(err, KindAuth) }

// IsValidation reports a bad-input failure, local or remote.
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsConflict reports a duplicate-resource failure.
func IsConflict(err error) bool { return is(err, KindConflict) }

// IsNotFound reports a missing-resource failure.
func IsNotFound(err error) bool { return is(err, KindNotFound) }

// IsServer reports a backend 5xx failure.
func IsServer(err error) bool { return is(err, KindServer) }

// MessageOf extracts the human-readable message for display; falls back to
// err.Error() for non-API errors.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
