// Package faults classifies the errors raised while building and running
// generators, so the CLI can report configuration problems differently from
// malformed input or a broken transition graph.
package faults

import (
	"errors"
	"fmt"
)

// Kind categorizes an error
type Kind string

const (
	// KindConfiguration covers unknown generator classes and missing fields.
	KindConfiguration Kind = "configuration"
	// KindValidation covers bad note names, unsupported time signatures,
	// non-positive weights and out of range values.
	KindValidation Kind = "validation"
	// KindEmptyTransition is raised when a node without outgoing edges is
	// asked to choose.
	KindEmptyTransition Kind = "empty_transition"
	// KindUnknown is returned by KindOf for errors outside the taxonomy.
	KindUnknown Kind = "unknown"
)

// Error is a classified error. Package-level sentinels are *Error values and
// call sites wrap them with fmt.Errorf("%w: ...").
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a classified error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error around cause
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Configuration creates a configuration error
func Configuration(format string, args ...any) *Error {
	return New(KindConfiguration, fmt.Sprintf(format, args...))
}

// Validation creates a validation error
func Validation(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of the first classified error in err's chain
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// IsConfiguration reports whether err is a configuration error
func IsConfiguration(err error) bool {
	return KindOf(err) == KindConfiguration
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsEmptyTransition reports whether err came from a node with no edges
func IsEmptyTransition(err error) bool {
	return KindOf(err) == KindEmptyTransition
}
