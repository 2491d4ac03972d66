package core

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

var notFoundPattern = regexp.MustCompile(`(?i)not found`)

// IsNotFoundError checks if an error is a "not found" error.
// Errors that only carry "not found" in their message also match.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return notFoundPattern.MatchString(err.Error())
}

// TransportError is returned when a call to the chat platform API fails,
// whether from the network, rate limiting or a permission denial
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// IsTransportError checks whether err wraps a TransportError
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
