// Package errors provides the standardized error taxonomy for the
// playground client. Every failure surfaced by the subsystem is one of
// the kinds below so callers can branch without string matching.
package errors

import "fmt"

// Kind classifies a client error.
type Kind string

const (
	KindValidation Kind = "validation" // malformed fingerprint, empty prompt/text
	KindTimeout    Kind = "timeout"    // request exceeded its bound
	KindTransport  Kind = "transport"  // no response reachable
	KindService    Kind = "service"    // service responded with a structured failure
	KindStorage    Kind = "storage"    // persisted state unreadable/unwritable
)

// Error is a classified client error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a classified error around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err (or anything it wraps) is a classified
// error of the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if ce, ok := err.(*Error); ok {
			return ce.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
