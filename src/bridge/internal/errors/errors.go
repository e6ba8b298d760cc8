package errors

import (
	stderr "errors"
	"fmt"
)

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// ErrNotAttached reports that the session has no attached target.
	ErrNotAttached = &InvalidStateError{Msg: "no target is attached to this session"}
	// ErrAlreadyAttached reports that the session is already attached to a target.
	ErrAlreadyAttached = &InvalidStateError{Msg: "a target is already attached to this session"}
)

// InvalidParamsError reports a malformed or out of range request argument.
type InvalidParamsError struct {
	Msg string
	Err error
}

// Error is an implementation of the error interface.
func (e *InvalidParamsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap returns the underlying cause.
func (e *InvalidParamsError) Unwrap() error {
	return e.Err
}

// InvalidParams formats a new InvalidParamsError.
func InvalidParams(format string, args ...interface{}) error {
	return &InvalidParamsError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports an operation that is not legal in the current session state.
type InvalidStateError struct {
	Msg string
}

// Error is an implementation of the error interface.
func (e *InvalidStateError) Error() string {
	return e.Msg
}

// InvalidState formats a new InvalidStateError.
func InvalidState(format string, args ...interface{}) error {
	return &InvalidStateError{Msg: fmt.Sprintf(format, args...)}
}

// InternalError wraps an unexpected failure while reading from or writing to the target.
type InternalError struct {
	Op  string
	Err error
}

// Error is an implementation of the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InternalError) Unwrap() error {
	return e.Err
}

// Internal wraps err as an InternalError for the named operation. A nil err stays nil.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &InternalError{Op: op, Err: err}
}

// DisconnectedError reports that the attached target is gone.
type DisconnectedError struct {
	Reason string
	Detail string
}

// Error is an implementation of the error interface.
func (e *DisconnectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("target disconnected (%s)", e.Reason)
	}
	return fmt.Sprintf("target disconnected (%s): %s", e.Reason, e.Detail)
}

// IsInvalidParams reports whether an InvalidParamsError is part of the error chain.
func IsInvalidParams(e error) bool {
	var target *InvalidParamsError
	return stderr.As(e, &target)
}

// IsInvalidState reports whether an InvalidStateError is part of the error chain.
func IsInvalidState(e error) bool {
	var target *InvalidStateError
	return stderr.As(e, &target)
}

// IsDisconnected reports whether a DisconnectedError is part of the error chain.
func IsDisconnected(e error) bool {
	var target *DisconnectedError
	return stderr.As(e, &target)
}

// IsInternal reports whether an InternalError is part of the error chain.
func IsInternal(e error) bool {
	var target *InternalError
	return stderr.As(e, &target)
}
