// Package apperr defines the error taxonomy shared by the validation,
// service and handler layers. Each error carries a machine-readable
// kind alongside a human-readable message naming the offending field
// or entity, which lets the transport layer pick a response status
// without inspecting message text. The core never recovers or retries
// on these errors; they short-circuit the command that produced them.
package apperr

import "fmt"

// Kind classifies an error into one of the categories the transport
// layer knows how to render.
type Kind int

const (
	// KindMissingData signals that no payload was supplied.
	KindMissingData Kind = iota
	// KindInvalidField signals a disallowed or missing required field.
	KindInvalidField
	// KindInvalidValue signals a malformed date, time, count, name or
	// an illegal status literal.
	KindInvalidValue
	// KindNotFound signals that a referenced reservation or table does
	// not exist.
	KindNotFound
	// KindRuleViolation signals a failed business rule, such as a
	// closed-day date, a terminal-status change or an occupied table.
	KindRuleViolation
	// KindInternal signals an unexpected infrastructure failure.
	KindInternal
)

// Error is the structured error surfaced to callers. Handlers should
// translate Kind into an HTTP status via HTTPStatus.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// HTTPStatus suggests a response status code for the error kind. The
// mapping mirrors how the API reports failures: client mistakes are
// 400, missing entities are 404, everything else is 500.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindMissingData, KindInvalidField, KindInvalidValue, KindRuleViolation:
		return 400
	case KindNotFound:
		return 404
	default:
		return 500
	}
}

// MissingData returns a KindMissingData error.
func MissingData(msg string) *Error {
	return &Error{Kind: KindMissingData, Message: msg}
}

// InvalidField returns a KindInvalidField error.
func InvalidField(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidField, Message: fmt.Sprintf(format, args...)}
}

// InvalidValue returns a KindInvalidValue error.
func InvalidValue(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidValue, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// RuleViolation returns a KindRuleViolation error.
func RuleViolation(format string, args ...any) *Error {
	return &Error{Kind: KindRuleViolation, Message: fmt.Sprintf(format, args...)}
}

// Internal returns a KindInternal error.
func Internal(msg string) *Error {
	return &Error{Kind: KindInternal, Message: msg}
}
