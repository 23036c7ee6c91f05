package helpers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-session-auth/pkg/helpers"
)

func TestConfirmTokenRoundTrip(t *testing.T) {
	m := helpers.NewConfirmTokenManager("testsecret", time.Hour)

	tok, err := m.Generate("user-123")
	require.NoError(t, err)

	uid, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)
}

func TestConfirmTokenWrongSecret(t *testing.T) {
	m := helpers.NewConfirmTokenManager("testsecret", time.Hour)
	other := helpers.NewConfirmTokenManager("othersecret", time.Hour)

	tok, err := m.Generate("user-123")
	require.NoError(t, err)

	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestConfirmTokenExpired(t *testing.T) {
	m := helpers.NewConfirmTokenManager("testsecret", -time.Minute)

	tok, err := m.Generate("user-123")
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.Error(t, err)
}

func TestConfirmTokenGarbage(t *testing.T) {
	m := helpers.NewConfirmTokenManager("testsecret", time.Hour)
	_, err := m.Parse("not-a-token")
	assert.Error(t, err)
}
