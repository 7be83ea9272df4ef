package application

import (
	"errors"
	"fmt"
)

// Kind classifies a failure raised by the application layer. Handlers map
// kinds to HTTP statuses; the core never formats transport responses.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
	// KindIntegrity marks a referential-integrity violation, e.g. a
	// credential whose owning user is missing. Never a user error.
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindIntegrity:
		return "integrity"
	default:
		return "internal"
	}
}

// Error is the typed failure returned by every use case.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets sentinel-style comparisons match on kind: two application
// errors are equal when their kinds are.
func (e *Error) Is(target error) bool {
	var ae *Error
	if errors.As(target, &ae) {
		return ae.Kind == e.Kind
	}
	return false
}

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Integrity(msg string, cause error) *Error {
	return &Error{Kind: KindIntegrity, Message: msg, cause: cause}
}
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, cause: cause}
}

// KindOf extracts the kind of an error, defaulting to KindInternal for
// anything the core did not classify.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Messages shared by flows that must stay indistinguishable: a missing
// credential and a mismatched credential use the same error so callers
// cannot enumerate accounts.
const (
	msgInvalidCredentials = "invalid credentials"
	msgNotLinked          = "oauth account not linked"
)
