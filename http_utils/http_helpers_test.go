package http_utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestNewValidationErrorResponse(t *testing.T) {
	type body struct {
		Username string `validate:"required"`
		RoomID   string `validate:"required,alphanum"`
	}

	err := validator.New().Struct(body{RoomID: "a b"})
	res := NewValidationErrorResponse(err)

	require.False(t, res.Success)
	require.Len(t, res.Errors, 2)
	require.Contains(t, res.Errors[0], "Username")
	require.Contains(t, res.Errors[1], "RoomID")

	plain := NewValidationErrorResponse(errors.New("EOF"))
	require.Equal(t, []string{"EOF"}, plain.Errors)
}
