package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("player_one"))
	assert.NoError(t, ValidateUsername("BGMI2024"))

	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("way_too_long_username_here"))
	assert.Error(t, ValidateUsername("has spaces"))
	assert.Error(t, ValidateUsername("semi;colon"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("player@campus.edu"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Str0ng!pass"))

	assert.Error(t, ValidatePassword("short1!"))
	assert.Error(t, ValidatePassword("alllowercase1!"))
	assert.Error(t, ValidatePassword("NoNumbers!!"))
	assert.Error(t, ValidatePassword("NoSpecials123"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.NotContains(t, SanitizeString("<script>alert(1)</script>hi"), "<script>")
}
