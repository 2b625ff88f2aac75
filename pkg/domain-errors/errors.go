// Package domainerrors defines the typed error vocabulary shared by every
// engine in the workflow core. Services return these instead of raw store
// errors so callers can branch on kind rather than on error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks bad caller input (empty IEC, non-positive expiry
	// period). Always recoverable locally by the caller.
	CodeValidation Code = "validation"
	// CodePrerequisite marks a business-rule rejection (exporter not
	// registered, license missing for a shipment). Surfaced to the end user
	// verbatim as the rejection reason.
	CodePrerequisite Code = "prerequisite"
	// CodeNotFound marks a lookup miss, distinct from "present but invalid".
	CodeNotFound Code = "not_found"
	// CodeConflict marks a uniqueness clash on caller-supplied data, such as
	// registering an IEC twice.
	CodeConflict Code = "conflict"
	// CodeDuplicate marks a collision on a generated identifier. Retryable:
	// a fresh draw is expected to succeed.
	CodeDuplicate Code = "duplicate"
	// CodeTimeout marks a store call that exceeded its deadline.
	CodeTimeout Code = "timeout"
	// CodeStoreUnavailable wraps an I/O or transaction failure. The in-flight
	// transaction has been rolled back; callers may try again.
	CodeStoreUnavailable Code = "store_unavailable"
	// CodeInternal is the catch-all for unexpected failures.
	CodeInternal Code = "internal"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause. The cause stays
// reachable through errors.Is / errors.As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability:
// dErrors.Is(err, dErrors.CodeNotFound).
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code carried by err, or CodeInternal when err
// is not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Retryable reports whether the failure is expected to clear on a retry
// without caller-side changes.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeDuplicate, CodeTimeout, CodeStoreUnavailable:
		return true
	default:
		return false
	}
}

// Message returns the outermost domain message, or err.Error() as a fallback.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
