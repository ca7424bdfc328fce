package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{
			name:     "successful hash",
			password: "correct horse battery staple",
			wantErr:  false,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
			errMsg:   "password cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Empty(t, hash)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, hash)
				// bcrypt хеш начинается с идентификатора алгоритма
				assert.True(t, strings.HasPrefix(hash, "$2"), "bcrypt hash expected, got %q", hash)
				assert.NotContains(t, hash, tt.password)
			}
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	// bcrypt солит каждый хеш, повторный вызов дает другой результат
	hash1, err := HashPassword("same-password")
	require.NoError(t, err)

	hash2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret-password-1")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		assert.NoError(t, VerifyPassword("secret-password-1", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := VerifyPassword("secret-password-2", hash)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid password")
	})

	t.Run("empty password", func(t *testing.T) {
		err := VerifyPassword("", hash)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password cannot be empty")
	})

	t.Run("empty hash", func(t *testing.T) {
		err := VerifyPassword("secret-password-1", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password hash cannot be empty")
	})
}
