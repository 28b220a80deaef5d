// Package errors provides structured, actionable error messages for attrmerge.
//
// The errors package implements a structured error system that:
//   - Records the call site that produced a structurally invalid template
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues with code examples
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - composition: Structurally invalid templates (capacity exceeded,
//     class lists on non-leaf targets, double-spread interceptor handles)
//   - protocol: Inspector wire errors (invalid frames, unknown operations)
//   - config: Inspector and binder configuration errors
//   - cli: Command-line errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "E001") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("E001").
//	    WithCallSite(1).
//	    WithDetail("27 directives composed through a boundary with capacity 26").
//	    WithSuggestion("Split the composition across nested components")
//
//	fmt.Println(err.FormatCompact())
//	// Output:
//	// app/card.go:15: E001: Attribute capacity exceeded
package errors
