package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the per-request view of one client's session. It is handed to
// the auth flows, which terminate by writing a user id into it (login) or
// clearing it (logout). Cookie I/O stays in the HTTP layer; this type only
// talks to the Store.
type Session struct {
	store Store
	ttl   time.Duration

	token   string
	attrs   Attributes
	issued  bool // a fresh token was written this request
	cleared bool // the current token was deleted this request
}

// UserID returns the authenticated user id, or "" for anonymous sessions.
func (s *Session) UserID() string {
	return s.attrs.UserID
}

// Token returns the opaque token backing this session, or "" when the
// request carried none and no login happened.
func (s *Session) Token() string {
	return s.token
}

// Issued reports whether a new token was created during this request and the
// cookie should be (re)written.
func (s *Session) Issued() bool {
	return s.issued
}

// Cleared reports whether the session was destroyed during this request and
// the cookie should be expired.
func (s *Session) Cleared() bool {
	return s.cleared
}

// SetUserID logs a user into this session. A fresh token is issued on every
// login, so two logins from two clients always produce two independent
// session records pointing at the same user.
func (s *Session) SetUserID(ctx context.Context, userID string) error {
	token := uuid.NewString()
	attrs := Attributes{UserID: userID}
	if err := s.store.Set(ctx, token, &attrs, s.ttl); err != nil {
		return err
	}
	s.token = token
	s.attrs = attrs
	s.issued = true
	s.cleared = false
	return nil
}

// Clear logs out this session only. Sibling sessions for the same account
// are untouched; there is no cross-session revocation list. Clearing an
// absent session is a silent no-op.
func (s *Session) Clear(ctx context.Context) error {
	if s.token != "" {
		if err := s.store.Delete(ctx, s.token); err != nil {
			return err
		}
	}
	s.attrs = Attributes{}
	s.issued = false
	s.cleared = true
	return nil
}

// Manager loads sessions from a Store and owns the token lifetime policy.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Load resolves an inbound token to a Session. Unknown or expired tokens
// yield an anonymous session; a later login will issue a fresh token rather
// than reuse the stale one.
func (m *Manager) Load(ctx context.Context, token string) (*Session, error) {
	sess := &Session{store: m.store, ttl: m.ttl}
	if token == "" {
		return sess, nil
	}
	attrs, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if attrs == nil {
		return sess, nil
	}
	sess.token = token
	sess.attrs = *attrs
	return sess, nil
}

// TTL returns the configured session lifetime, used for cookie max-age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
