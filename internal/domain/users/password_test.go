package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordStrong(t *testing.T) {
	assert.True(t, PasswordStrong("abrigo2024"))
	assert.False(t, PasswordStrong("curta1"))
	assert.False(t, PasswordStrong("somenteletras"))
	assert.False(t, PasswordStrong("1234567890"))
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("abrigo2024")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("abrigo2024")))
}
