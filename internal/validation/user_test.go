package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "alice_99", "UPPER_lower_123", strings.Repeat("a", 24)}
	for _, username := range valid {
		assert.NoError(t, ValidateUsername(username), username)
	}

	invalid := []string{"", "ab", "has space", "dash-ed", "émoji", strings.Repeat("a", 25)}
	for _, username := range invalid {
		assert.Error(t, ValidateUsername(username), username)
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "alice+tag@example.com", "first.last@sub.domain.org"}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"alice@",
		"alice@nodot",
		"two@@example.com",
		strings.Repeat("a", 250) + "@b.co",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Password12345", false},
		{"Too Short", "Pass123", true},
		{"Too Long", "Aa1" + strings.Repeat("x", 126), true},
		{"No Uppercase", "password12345", true},
		{"No Lowercase", "PASSWORD12345", true},
		{"No Digit", "PasswordPassword", true},
		{"Exactly Twelve", "Abcdefghijk1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t\n"))
	assert.False(t, IsBlank(" x "))
}
