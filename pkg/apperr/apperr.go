// Package apperr defines the application error model returned from
// handlers and middleware: canonical codes, HTTP status mapping, and
// per-field suggestions for validation failures.
package apperr

import "fmt"

// Suggestion is a per-field hint attached to a validation error.
type Suggestion struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the canonical error shape serialized to clients.
type AppError struct {
	Code        string       `json:"code"`
	Message     string       `json:"message"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	HTTPStatus  int          `json:"-"`
	cause       error
}

// New creates an AppError from an ErrorCode.
func New(ec *ErrorCode) *AppError {
	if ec == nil {
		ec = ErrorCodeInternal
	}
	return &AppError{
		Code:       ec.Code(),
		Message:    ec.Message(),
		HTTPStatus: ec.HTTPStatus(),
	}
}

// Newf creates an AppError with a formatted message.
func Newf(ec *ErrorCode, format string, args ...any) *AppError {
	a := New(ec)
	a.Message = fmt.Sprintf(format, args...)
	return a
}

// FromError wraps a generic error into an AppError, falling back to the
// internal code with a minimal client-facing message.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AppError); ok {
		return ae
	}
	a := New(ErrorCodeInternal)
	a.cause = err
	return a
}

// AddSuggestion appends a field suggestion (fluent).
func (a *AppError) AddSuggestion(field, message string) *AppError {
	a.Suggestions = append(a.Suggestions, Suggestion{Field: field, Message: message})
	return a
}

// WithMessage overrides the message (fluent).
func (a *AppError) WithMessage(msg string) *AppError {
	a.Message = msg
	return a
}

// Wrap sets the underlying cause (fluent).
func (a *AppError) Wrap(err error) *AppError {
	a.cause = err
	return a
}

func (a *AppError) Error() string {
	if a == nil {
		return "<nil>"
	}
	if a.cause != nil {
		return fmt.Sprintf("%s: %v", a.Code, a.cause)
	}
	return fmt.Sprintf("%s: %s", a.Code, a.Message)
}

// Unwrap returns the underlying cause so errors.Is/As keep working.
func (a *AppError) Unwrap() error { return a.cause }
