// Package validator wraps go-playground/validator and converts binding
// failures into the application error model.
package validator

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	gvalidator "github.com/go-playground/validator/v10"

	"github.com/leadgrid/console/pkg/apperr"
)

// Validator wraps the go-playground engine.
type Validator struct {
	v *gvalidator.Validate
}

// New creates a Validator and registers a tag-name function with gin's
// binding engine so field errors report json/form names instead of Go
// field names.
func New() *Validator {
	v := gvalidator.New()

	if be, ok := binding.Validator.Engine().(*gvalidator.Validate); ok {
		be.RegisterTagNameFunc(fieldName)
	}

	return &Validator{v: v}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		value := f.Tag.Get(tag)
		if value == "" || value == "-" {
			continue
		}
		return strings.SplitN(value, ",", 2)[0]
	}
	return f.Name
}

// RegisterValidation registers a custom validation tag.
func (vi *Validator) RegisterValidation(tag string, fn gvalidator.Func) error {
	return vi.v.RegisterValidation(tag, fn)
}

// ParseError converts any binding/validator/json error into an AppError.
func (vi *Validator) ParseError(err error) *apperr.AppError {
	if err == nil {
		return nil
	}

	switch e := err.(type) {
	case gvalidator.ValidationErrors:
		appErr := apperr.New(apperr.ErrorCodeValidationFail)
		for _, fe := range e {
			appErr.AddSuggestion(fe.Field(), messageFor(fe))
		}
		return appErr

	case *json.UnmarshalTypeError:
		appErr := apperr.New(apperr.ErrorCodeInvalidRequest)
		if e.Field == "" {
			return appErr
		}
		return appErr.AddSuggestion(e.Field, fmt.Sprintf("invalid type: expected %s", e.Type.String()))

	case *json.SyntaxError:
		return apperr.New(apperr.ErrorCodeInvalidRequest).WithMessage("Invalid JSON payload")

	default:
		return apperr.New(apperr.ErrorCodeInvalidRequest).WithMessage(fmt.Sprintf("Invalid input: %v", err))
	}
}

func messageFor(fe gvalidator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("field %s failed on '%s' validation (param=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("field %s failed on '%s' validation", fe.Field(), fe.Tag())
}

// BindJSON binds and validates the JSON body into T. Returns either
// (*T, nil) or (nil, *apperr.AppError).
func BindJSON[T any](vi *Validator, ctx *gin.Context) (*T, *apperr.AppError) {
	var req T
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, vi.ParseError(err)
	}
	return &req, nil
}
