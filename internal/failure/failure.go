// Package failure classifies pipeline errors so the CLI can report them and
// pick an exit code per failure class.
package failure

import (
	"errors"
	"fmt"
)

// Category is the broad class of a pipeline failure.
type Category string

const (
	// CategoryConfig is a missing or invalid credential or setting.
	CategoryConfig Category = "config"
	// CategoryTransport is a network failure or non-success status from an external call.
	CategoryTransport Category = "transport"
	// CategoryValidation is a generator reply missing required fields, or missing input state.
	CategoryValidation Category = "validation"
	// CategoryStorage is a failed write to a persisted state file.
	CategoryStorage Category = "storage"
	// CategoryInternal is anything else.
	CategoryInternal Category = "internal"
)

// Error is an error tagged with a Category.
type Error struct {
	category Category
	message  string
	cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.category, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.category, e.message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Category returns the failure class.
func (e *Error) Category() Category {
	return e.category
}

// Message returns the message without category or cause.
func (e *Error) Message() string {
	return e.message
}

// New creates a classified error without a cause.
func New(category Category, format string, args ...any) *Error {
	return &Error{category: category, message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(err error, category Category, message string) error {
	if err == nil {
		return nil
	}
	return &Error{category: category, message: message, cause: err}
}

// As extracts the outermost classified error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CategoryOf returns err's category, or CategoryInternal for unclassified errors.
func CategoryOf(err error) Category {
	if e, ok := As(err); ok {
		return e.category
	}
	return CategoryInternal
}

// Is reports whether err carries the given category.
func Is(err error, category Category) bool {
	e, ok := As(err)
	return ok && e.category == category
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	e, ok := As(err)
	if !ok {
		return 1
	}
	switch e.category {
	case CategoryValidation:
		return 2
	case CategoryConfig:
		return 7
	case CategoryTransport:
		return 8
	case CategoryStorage:
		return 11
	default:
		return 1
	}
}
