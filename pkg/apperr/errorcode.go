package apperr

import "net/http"

// Canonical error codes used across the console handlers.
var (
	ErrorCodeSuccess        = NewErrorCode("success", "OK", http.StatusOK)
	ErrorCodeInvalidRequest = NewErrorCode("invalid_request", "Invalid request body", http.StatusBadRequest)
	ErrorCodeValidationFail = NewErrorCode("validation_failed", "Validation failed", http.StatusUnprocessableEntity)
	ErrorCodeUnauthorized   = NewErrorCode("unauthorized", "Unauthorized", http.StatusUnauthorized)
	ErrorCodeForbidden      = NewErrorCode("forbidden", "Forbidden", http.StatusForbidden)
	ErrorCodeNotFound       = NewErrorCode("not_found", "Not found", http.StatusNotFound)
	ErrorCodeUpstream       = NewErrorCode("upstream_error", "Upstream service error", http.StatusBadGateway)
	ErrorCodeInternal       = NewErrorCode("internal_error", "Internal server error", http.StatusInternalServerError)
)

// ErrorCode describes a canonical application error code with its HTTP
// status mapping.
type ErrorCode struct {
	code       string
	message    string
	httpStatus int
}

func NewErrorCode(code, message string, httpStatus int) *ErrorCode {
	return &ErrorCode{code: code, message: message, httpStatus: httpStatus}
}

func (ec *ErrorCode) Code() string    { return ec.code }
func (ec *ErrorCode) Message() string { return ec.message }
func (ec *ErrorCode) HTTPStatus() int { return ec.httpStatus }
