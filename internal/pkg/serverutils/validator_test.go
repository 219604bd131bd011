package serverutils

import (
	"testing"

	"humanlenk-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
}

func TestValidateStructCollectsFieldErrors(t *testing.T) {
	err := validateStruct(&registerPayload{
		Email:    "not-an-email",
		Password: "short",
		Name:     "x",
	})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Validation failed", appErr.Message)

	fields, ok := appErr.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 3)

	byField := map[string]string{}
	for _, fe := range fields {
		byField[fe.Field] = fe.Message
	}
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "must be at least 8", byField["password"])
	assert.Equal(t, "must be at least 2", byField["name"])
}

func TestValidateStructMissingRequired(t *testing.T) {
	err := validateStruct(&registerPayload{})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	fields, ok := appErr.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 3)
	for _, fe := range fields {
		assert.Equal(t, "is required", fe.Message)
	}
}

func TestValidateStructPasses(t *testing.T) {
	err := validateStruct(&registerPayload{
		Email:    "sam@example.com",
		Password: "long-enough",
		Name:     "Sam",
	})
	assert.NoError(t, err)
}

func TestLowerFirst(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"Email", "email"},
		{"UserId", "userId"},
		{"already", "already"},
		{"A", "a"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, lowerFirst(tc.in))
	}
}
