package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Profile is the identity returned by the provider after a successful
// round-trip: an opaque external id plus whatever emails the provider is
// willing to share (possibly none).
type Profile struct {
	ID     string
	Emails []string
}

// Provider abstracts the third-party OAuth round-trip so the reconciliation
// flow and the HTTP handlers can be tested without network access.
type Provider interface {
	AuthCodeURL(state, verifier string) string
	FetchProfile(ctx context.Context, code, verifier string) (*Profile, error)
}

var twitterEndpoint = oauth2.Endpoint{
	AuthURL:   "https://twitter.com/i/oauth2/authorize",
	TokenURL:  "https://api.twitter.com/2/oauth2/token",
	AuthStyle: oauth2.AuthStyleInHeader,
}

const twitterProfileURL = "https://api.twitter.com/2/users/me"

// Twitter implements Provider against the Twitter v2 API. The authorization
// code flow uses PKCE as Twitter requires.
type Twitter struct {
	cfg oauth2.Config
}

func NewTwitter(clientID, clientSecret, callbackURL string) *Twitter {
	return &Twitter{
		cfg: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"users.read", "tweet.read"},
			Endpoint:     twitterEndpoint,
		},
	}
}

func (t *Twitter) AuthCodeURL(state, verifier string) string {
	return t.cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// FetchProfile exchanges the authorization code and loads the user profile.
// Any failure here means the provider round-trip failed; the caller must not
// mutate accounts or sessions.
func (t *Twitter) FetchProfile(ctx context.Context, code, verifier string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	tok, err := t.cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	client := t.cfg.Client(ctx, tok)
	resp, err := client.Get(twitterProfileURL)
	if err != nil {
		return nil, fmt.Errorf("profile fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("profile fetch: status %d: %s", resp.StatusCode, body)
	}

	var parsed struct {
		Data struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("profile decode: %w", err)
	}
	if parsed.Data.ID == "" {
		return nil, errors.New("profile missing id")
	}

	p := &Profile{ID: parsed.Data.ID}
	if parsed.Data.Email != "" {
		p.Emails = append(p.Emails, parsed.Data.Email)
	}
	return p, nil
}

var _ Provider = (*Twitter)(nil)
