package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation. Callers map kinds to HTTP statuses or
// dashboard notifications.
type Kind int

const (
	Unexpected Kind = iota
	Unauthenticated
	Forbidden
	Missing
	Invalid
	NotFound
	Conflict
	ReferentialConflict
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Missing:
		return "missing"
	case Invalid:
		return "invalid"
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case ReferentialConflict:
		return "referential conflict"
	default:
		return "unexpected"
	}
}

// Fixed user-facing messages.
const (
	MsgUnauthenticated = "Unauthenticated user"
	MsgForbidden       = "Unauthorised"
	MsgInvalid         = "Invalid request data passed"
	MsgUnexpected      = "Could not post to store at this time, try again later"
	MsgStoreIDRequired = "StoreId is required"
)

// Error is the result of a failed catalog operation. Message is safe to show
// to the caller; Err holds the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err. Errors that are not *Error are Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MsgUnexpected
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func unexpected(err error) *Error {
	return newError(Unexpected, MsgUnexpected, err)
}
