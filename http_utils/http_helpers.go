package http_utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// NewValidationErrorResponse describes why a request body failed binding or
// validation.
func NewValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		BaseResponse: NewBaseResponse(false, "invalid body, validation failed"),
		Errors:       ValidationMessages(err),
	}
}

// ValidationMessages flattens validator errors into readable strings.
func ValidationMessages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	return lo.Map(verrs, func(item validator.FieldError, index int) string {
		return item.Error()
	})
}
