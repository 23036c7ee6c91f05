package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-session-auth/pkg/helpers"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := helpers.HashPassword("jlkajoioiqwe")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "jlkajoioiqwe", hash)

	assert.True(t, helpers.CompareHashAndPassword(hash, "jlkajoioiqwe"))
	assert.False(t, helpers.CompareHashAndPassword(hash, "wrongpassword"))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := helpers.HashPassword("samepassword")
	require.NoError(t, err)
	h2, err := helpers.HashPassword("samepassword")
	require.NoError(t, err)

	// bcrypt embeds a random salt, so identical inputs hash differently
	assert.NotEqual(t, h1, h2)
	assert.True(t, helpers.CompareHashAndPassword(h1, "samepassword"))
	assert.True(t, helpers.CompareHashAndPassword(h2, "samepassword"))
}

func TestCompareHashFailsClosed(t *testing.T) {
	assert.False(t, helpers.CompareHashAndPassword("", "anything"))
	assert.False(t, helpers.CompareHashAndPassword("not-a-bcrypt-hash", "anything"))
}
