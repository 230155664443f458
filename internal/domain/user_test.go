package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("ana@example.com", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "ana@example.com", "a-long-enough-pass", nil},
		{"empty email", "", "a-long-enough-pass", ErrEmptyEmail},
		{"missing at", "anaexample.com", "a-long-enough-pass", ErrInvalidEmail},
		{"missing domain dot", "ana@example", "a-long-enough-pass", ErrInvalidEmail},
		{"short password", "ana@example.com", "short", ErrPasswordTooShort},
		{"long password", "ana@example.com", strings.Repeat("x", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.email, tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUserValidateLoadedFromStore(t *testing.T) {
	user, err := NewUser("ana@example.com", "a-long-enough-pass")
	require.NoError(t, err)

	// A stored user has a hash and no plaintext password.
	user.Password = ""
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}
