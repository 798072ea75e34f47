package auth

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	// ErrInvalidCredentials means the server rejected the login attempt
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionExpired means the server rejected an authenticated call
	ErrSessionExpired = errors.New("session expired")

	// ErrLoginInProgress is returned when a login is attempted while
	// another one is still in flight
	ErrLoginInProgress = errors.New("a login attempt is already in progress")

	// ErrNoSession is returned by operations that require an active session
	ErrNoSession = errors.New("no active session")
)

// ServerError represents a 5xx response or an unparseable reply
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d)", e.StatusCode)
}

// NetworkError wraps a transport failure
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// FieldErrors extracts field-scoped validation messages from an error, if
// it carries any. Both local pre-network checks and 4xx responses with
// field errors produce validation.Errors maps.
func FieldErrors(err error) (validation.Errors, bool) {
	var ve validation.Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
