package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so callers can tell business-rule
// failures apart from retryable infrastructure failures.
type ErrorKind string

const (
	// KindNotFound signals an unknown session or mentor id.
	KindNotFound ErrorKind = "not_found"
	// KindInvalidState signals an operation not valid for the current lifecycle state.
	KindInvalidState ErrorKind = "invalid_state"
	// KindUnauthorized signals a caller lacking the required relationship to the session.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindValidation signals malformed input, e.g. a bad time range.
	KindValidation ErrorKind = "validation"
	// KindIO signals a storage or collaborator failure; callers may retry with backoff.
	KindIO ErrorKind = "io"
)

// Error is a kind-carrying domain error. Domain kinds are never retried
// internally; KindIO is the only retryable classification.
type Error struct {
	Kind ErrorKind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// NotFoundError reports an unknown entity id.
func NotFoundError(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports an operation attempted from the wrong lifecycle state.
func InvalidStateError(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidState, msg: fmt.Sprintf(format, args...)}
}

// UnauthorizedError reports a caller without the required relationship.
func UnauthorizedError(format string, args ...interface{}) error {
	return &Error{Kind: KindUnauthorized, msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports malformed input.
func ValidationError(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// IOError wraps a storage or collaborator failure.
func IOError(msg string, err error) error {
	return &Error{Kind: KindIO, msg: msg, err: err}
}

// KindOf extracts the error kind, or "" for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether the error carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
