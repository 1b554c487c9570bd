package validation

import (
	"math"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringValidation(t *testing.T) {
	assert.False(t, NewStringValidation("   ").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.False(t, NewStringValidation("abc").WithMaxLength(2).Validate())
	assert.True(t, NewStringValidation("æøå").WithMaxLength(3).Validate())
	assert.True(t, NewStringValidation("TDT4100").WithPattern(CompiledPatterns.CourseCode).Validate())
	assert.False(t, NewStringValidation("-bad").WithPattern(CompiledPatterns.CourseCode).Validate())
}

func TestValidCredits(t *testing.T) {
	assert.True(t, ValidCredits(0))
	assert.True(t, ValidCredits(7.5))
	assert.False(t, ValidCredits(-1))
	assert.False(t, ValidCredits(MaxCredits+1))
	assert.False(t, ValidCredits(math.NaN()))
}

type courseBody struct {
	Code    string  `binding:"required,coursecode"`
	Credits float64 `binding:"credits"`
}

func TestRegisterBindings(t *testing.T) {
	require.NoError(t, RegisterBindings())

	assert.NoError(t, binding.Validator.ValidateStruct(&courseBody{Code: "IT2810", Credits: 7.5}))
	assert.Error(t, binding.Validator.ValidateStruct(&courseBody{Code: "!!", Credits: 7.5}))
	assert.Error(t, binding.Validator.ValidateStruct(&courseBody{Code: "IT2810", Credits: -3}))
}
