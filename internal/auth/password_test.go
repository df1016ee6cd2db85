package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	encoded, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", encoded)

	assert.True(t, CheckPassword("hunter22", encoded))
	assert.False(t, CheckPassword("hunter23", encoded))
	assert.False(t, CheckPassword("", encoded))
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		password, err := GeneratePassword(8)
		require.NoError(t, err)
		require.Len(t, password, 8)

		for _, r := range password {
			assert.True(t, strings.ContainsRune(passwordCharset, r), "unexpected character %q", r)
		}
		seen[password] = true
	}
	// 20 draws from a 57-character alphabet should never collide.
	assert.Greater(t, len(seen), 1)
}
