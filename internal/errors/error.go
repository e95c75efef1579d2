package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryContent   Category = "content"
	CategoryBlueprint Category = "blueprint"
	CategoryMod       Category = "mod"
	CategoryConfig    Category = "config"
	CategoryAPI       Category = "api"
)

// HubError is a structured error with a code, suggestions, and documentation.
type HubError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (content, mod, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *HubError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *HubError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *HubError) WithDetail(d string) *HubError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *HubError) WithSuggestion(s string) *HubError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *HubError) Wrap(err error) *HubError {
	e.Wrapped = err
	return e
}

// New creates a HubError from a registered error code.
func New(code string) *HubError {
	template, ok := registry[code]
	if !ok {
		return &HubError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &HubError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new HubError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *HubError {
	return &HubError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a HubError.
func FromError(err error, code string) *HubError {
	if err == nil {
		return nil
	}
	if he, ok := err.(*HubError); ok {
		return he
	}
	return New(code).Wrap(err)
}

// CodeOf returns the error code of err, or "" if err carries none.
func CodeOf(err error) string {
	if he, ok := err.(*HubError); ok {
		return he.Code
	}
	return ""
}
