// Package response provides the standard JSON envelope written by console
// handlers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadgrid/console/pkg/apperr"
)

// APIResponse is the envelope returned to clients.
type APIResponse struct {
	Success bool                `json:"success"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  []apperr.Suggestion `json:"errors,omitempty"`
}

// JSONSuccess writes a success envelope with the given status.
func JSONSuccess(ctx *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse{
		Success: true,
		Code:    apperr.ErrorCodeSuccess.Code(),
		Message: apperr.ErrorCodeSuccess.Message(),
		Data:    data,
	})
}

// JSONError writes an error envelope from an *apperr.AppError.
func JSONError(ctx *gin.Context, appErr *apperr.AppError) {
	if appErr == nil {
		appErr = apperr.New(apperr.ErrorCodeInternal)
	}
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, APIResponse{
		Success: false,
		Code:    appErr.Code,
		Message: appErr.Message,
		Errors:  appErr.Suggestions,
	})
}

// Success is shorthand for JSONSuccess with http.StatusOK.
func Success(ctx *gin.Context, data any) {
	JSONSuccess(ctx, http.StatusOK, data)
}

// HandleError converts any error into the standard error envelope.
func HandleError(ctx *gin.Context, err error) {
	if err == nil {
		return
	}
	JSONError(ctx, apperr.FromError(err))
}
