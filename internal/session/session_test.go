package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-session-auth/internal/session"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, store.Set(ctx, "tok", &session.Attributes{UserID: "u1"}, -time.Second))
	attrs, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, attrs)
}

func TestLoadAnonymous(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(session.NewMemoryStore(), time.Hour)

	sess, err := mgr.Load(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, sess.UserID())
	assert.Empty(t, sess.Token())

	// unknown token also yields an anonymous session
	sess, err = mgr.Load(ctx, "no-such-token")
	require.NoError(t, err)
	assert.Empty(t, sess.UserID())
	assert.Empty(t, sess.Token())
}

func TestLoginIssuesFreshToken(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, time.Hour)

	sess, err := mgr.Load(ctx, "")
	require.NoError(t, err)
	require.NoError(t, sess.SetUserID(ctx, "u1"))
	require.NotEmpty(t, sess.Token())
	assert.True(t, sess.Issued())

	// the token resolves back to the same user
	reloaded, err := mgr.Load(ctx, sess.Token())
	require.NoError(t, err)
	assert.Equal(t, "u1", reloaded.UserID())

	// logging in again rotates the token
	first := sess.Token()
	require.NoError(t, sess.SetUserID(ctx, "u1"))
	assert.NotEqual(t, first, sess.Token())
}

func TestTwoSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, time.Hour)

	sess1, err := mgr.Load(ctx, "")
	require.NoError(t, err)
	require.NoError(t, sess1.SetUserID(ctx, "u1"))

	sess2, err := mgr.Load(ctx, "")
	require.NoError(t, err)
	require.NoError(t, sess2.SetUserID(ctx, "u1"))

	require.NotEqual(t, sess1.Token(), sess2.Token())

	// clearing one session leaves the sibling logged in
	require.NoError(t, sess1.Clear(ctx))
	assert.True(t, sess1.Cleared())
	assert.Empty(t, sess1.UserID())

	reloaded2, err := mgr.Load(ctx, sess2.Token())
	require.NoError(t, err)
	assert.Equal(t, "u1", reloaded2.UserID())
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(session.NewMemoryStore(), time.Hour)

	sess, err := mgr.Load(ctx, "")
	require.NoError(t, err)

	// clearing a session that never logged in is a silent no-op
	require.NoError(t, sess.Clear(ctx))
	require.NoError(t, sess.Clear(ctx))

	require.NoError(t, sess.SetUserID(ctx, "u1"))
	require.NoError(t, sess.Clear(ctx))
	require.NoError(t, sess.Clear(ctx))
	assert.Empty(t, sess.UserID())
}
