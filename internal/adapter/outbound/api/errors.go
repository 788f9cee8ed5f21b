package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrAuthMissing is returned when an authenticated call is attempted
	// with no token available. The call fails before any network traffic.
	ErrAuthMissing = errors.New("authentication token not found")

	// ErrAuthRejected is returned when the server answers 401 or 403.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrServer is returned for any other non-2xx response.
	ErrServer = errors.New("server error")

	// ErrNetwork is returned when no response was received at all.
	ErrNetwork = errors.New("network error")

	// ErrMalformedResponse is returned when a 2xx response body cannot be
	// parsed as expected.
	ErrMalformedResponse = errors.New("malformed response")
)

// AuthMissingMessage is the fixed user-facing message for a missing token.
const AuthMissingMessage = "Authentication token not found. Please log in again."

// AuthRejectedMessage is the fixed user-facing message for 401/403 responses.
// The response body is deliberately not consulted in that case.
const AuthRejectedMessage = "Authentication required. Please log in again."

// AuthRejectedError is returned when a protected call answers 401 or 403.
type AuthRejectedError struct {
	// StatusCode is 401 or 403.
	StatusCode int
}

// Error returns the fixed re-authentication prompt.
func (e *AuthRejectedError) Error() string {
	return AuthRejectedMessage
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrAuthRejected).
func (e *AuthRejectedError) Is(target error) bool {
	return target == ErrAuthRejected
}

// ServerError is returned for a non-2xx response other than 401/403.
// Message carries the server's best-effort explanation: the "message" field
// of a JSON error body, or a status-derived fallback when the body is not
// parseable.
type ServerError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Message is the user-facing explanation.
	Message string
	// FromServer is true when Message was parsed out of the response body
	// rather than synthesized from the status code. Callers that prefer
	// their own generic wording over a synthesized one check this.
	FromServer bool
}

// Error returns the server-provided or synthesized message.
func (e *ServerError) Error() string {
	return e.Message
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrServer).
func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}

// NetworkError is returned when the transport fails before a response is
// received (DNS failure, connection refused, timeout).
type NetworkError struct {
	// Cause is the underlying transport error.
	Cause error
}

// Error returns a human-readable description of the transport failure.
func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %v", e.Cause)
	}
	return "network error"
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrNetwork).
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// MalformedResponseError is returned when a 2xx body fails to decode.
// For user display it is treated like a server error.
type MalformedResponseError struct {
	// Cause is the decoding error.
	Cause error
}

// Error returns a human-readable description of the decode failure.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Cause)
}

// Unwrap returns the underlying decoding error.
func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrMalformedResponse).
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
