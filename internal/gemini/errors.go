package gemini

import "fmt"

// ErrorKind classifies a collaborator failure so callers can decide
// between "fix your key", "try again" and "give up".
type ErrorKind string

const (
	KindMissingCredentials ErrorKind = "missing_credentials"
	KindNetwork            ErrorKind = "network"
	KindInvalidResponse    ErrorKind = "invalid_response"
	KindUnknown            ErrorKind = "unknown"
)

// Error is the typed error returned by every Client method.
type Error struct {
	Kind ErrorKind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("gemini: %s: %v", e.msg, e.err)
	}
	return "gemini: " + e.msg
}

func (e *Error) Unwrap() error { return e.err }

func errorf(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

// KindOf extracts the error kind, defaulting to unknown for foreign
// errors.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}
