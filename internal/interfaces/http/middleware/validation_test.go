package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementRule(t *testing.T) {
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type form struct {
		Chest string `validate:"omitempty,measurement"`
	}

	valid := []string{"", "16", "16.5", "42 cm", "32in", "17.25 inches", "40CM"}
	for _, value := range valid {
		assert.NoError(t, v.Struct(form{Chest: value}), "value %q should pass", value)
	}

	invalid := []string{"abc", "-16", "16.5 meters", "cm", "16..5x", "16 5"}
	for _, value := range invalid {
		assert.Error(t, v.Struct(form{Chest: value}), "value %q should fail", value)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type form struct {
		SizeName string `json:"size_name" validate:"required"`
	}

	err := v.Struct(form{})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-42")
	assert.False(t, resp.Success)
	assert.Equal(t, "req-42", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "size_name", resp.Error.Details[0].Field)
	assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
}
