package errors

import (
	"fmt"
	"runtime"
)

// Category represents the type of error.
type Category string

const (
	CategoryComposition Category = "composition"
	CategoryProtocol    Category = "protocol"
	CategoryConfig      Category = "config"
	CategoryCLI         Category = "cli"
)

// Location represents the call site where an error was raised.
type Location struct {
	File string
	Line int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// AttrError is a structured error with a code, call-site location,
// suggestions, and documentation links.
//
// Composition errors always carry the caller's file:line so a structurally
// invalid template can be traced back to the call that built it.
type AttrError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (composition, protocol, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the call site where the error was raised.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *AttrError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AttrError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an AttrError with the same code.
// This lets callers match on codes without holding the exact instance.
func (e *AttrError) Is(target error) bool {
	t, ok := target.(*AttrError)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithCallSite records the caller's source location on the error.
// skip counts stack frames above WithCallSite itself, as in runtime.Caller.
func (e *AttrError) WithCallSite(skip int) *AttrError {
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		e.Location = &Location{File: file, Line: line}
	}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *AttrError) WithSuggestion(s string) *AttrError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *AttrError) WithExample(ex string) *AttrError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *AttrError) WithDetail(d string) *AttrError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *AttrError) Wrap(err error) *AttrError {
	e.Wrapped = err
	return e
}

// New creates an AttrError from a registered error code.
func New(code string) *AttrError {
	template, ok := registry[code]
	if !ok {
		return &AttrError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &AttrError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new AttrError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *AttrError {
	return &AttrError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an AttrError.
func FromError(err error, code string) *AttrError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AttrError); ok {
		return ae
	}
	return New(code).Wrap(err)
}
