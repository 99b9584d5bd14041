package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
		Rut  string `validate:"omitempty,rut"`
	}

	t.Run("valid struct passes", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(form{Name: "Ana", Rut: "12345678"}))
	})

	t.Run("missing required field fails with field detail", func(t *testing.T) {
		err := ValidateStruct(form{})
		assert.True(t, IsValidationError(err))
	})

	t.Run("rut tag enforces 8 digits", func(t *testing.T) {
		assert.Error(t, ValidateStruct(form{Name: "Ana", Rut: "123"}))
		assert.Error(t, ValidateStruct(form{Name: "Ana", Rut: "12.345.678"}))
	})
}

func TestIsValidRut(t *testing.T) {
	assert.True(t, IsValidRut("12345678"))
	assert.False(t, IsValidRut("1234567"))
	assert.False(t, IsValidRut("123456789"))
	assert.False(t, IsValidRut("1234567a"))
}
