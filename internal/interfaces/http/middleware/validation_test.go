package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	require.NotNil(t, v)

	type payload struct {
		Email string `json:"email" binding:"required,email"`
	}
	err := v.Struct(payload{Email: "nope"})
	require.Error(t, err)

	ve, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	// Field name comes from the json tag after setup
	assert.Equal(t, "email", ve[0].Field())
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	type payload struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name" binding:"required,max=5"`
	}

	v := binding.Validator.Engine().(*validator.Validate)
	err := v.Struct(payload{Email: "not-an-email", Name: "much too long"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-123")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
	assert.Equal(t, "Invalid email format", resp.Error.Details[0].Message)
	assert.Equal(t, "name", resp.Error.Details[1].Field)
	assert.Equal(t, "Must be at most 5 characters", resp.Error.Details[1].Message)
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(errors.New("unexpected EOF"), "")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "unexpected EOF", resp.Error.Message)
	assert.Empty(t, resp.Error.Details)
}
