package classify

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates classification failures.
type ErrorKind string

const (
	// KindCredentials means the backend API key is missing or rejected.
	KindCredentials ErrorKind = "credentials"
	// KindTransport means the backend was unreachable or errored.
	KindTransport ErrorKind = "transport"
	// KindSafety means the backend suppressed the response. It surfaces
	// to users identically to a transport error but is logged distinctly.
	KindSafety ErrorKind = "safety"
	// KindSchema means the response did not match the result contract.
	KindSchema ErrorKind = "schema"
)

// Error is a classification failure. There is no retry policy: a
// failed classification surfaces immediately and the remedy is manual
// resubmission.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("classify: %s error", e.Kind)
	}
	return fmt.Sprintf("classify: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the error kind, or "" when err is not a classify error.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
