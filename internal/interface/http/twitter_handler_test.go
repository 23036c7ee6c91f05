package handlers_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-session-auth/internal/oauth"
)

// startTwitterFlow hits the redirect endpoint and returns the state the
// server generated. The browser's jar keeps the state and verifier cookies.
func startTwitterFlow(t *testing.T, client *http.Client, base string) string {
	t.Helper()
	resp, err := client.Get(base + "/auth/twitter")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "provider.example", loc.Host)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestTwitterFirstLogin(t *testing.T) {
	srv, deps := newTestServer(t)
	client := newBrowser(t)
	deps.provider.profile = &oauth.Profile{ID: "tw-1", Emails: []string{"alice@bob.com"}}

	state := startTwitterFlow(t, client, srv.URL)

	resp, err := client.Get(srv.URL + "/auth/twitter/callback?state=" + state + "&code=authcode")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, frontendHost, resp.Header.Get("Location"))

	// the browser is now logged into the reconciled account
	_, env := getJSON(t, client, srv.URL+"/api/me")
	view := dataView(t, env)
	require.NotNil(t, view)
	require.NotNil(t, view.Email)
	assert.Equal(t, "alice@bob.com", *view.Email)
	assert.Equal(t, 1, deps.repo.Count())
}

func TestTwitterReturningLoginNoDuplicate(t *testing.T) {
	srv, deps := newTestServer(t)
	deps.provider.profile = &oauth.Profile{ID: "tw-1", Emails: []string{"alice@bob.com"}}

	for i := 0; i < 2; i++ {
		client := newBrowser(t)
		state := startTwitterFlow(t, client, srv.URL)
		resp, err := client.Get(srv.URL + "/auth/twitter/callback?state=" + state + "&code=authcode")
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusFound, resp.StatusCode)
	}
	assert.Equal(t, 1, deps.repo.Count())
}

func TestTwitterStateMismatch(t *testing.T) {
	srv, deps := newTestServer(t)
	client := newBrowser(t)
	deps.provider.profile = &oauth.Profile{ID: "tw-1"}

	startTwitterFlow(t, client, srv.URL)

	resp, err := client.Get(srv.URL + "/auth/twitter/callback?state=tampered&code=authcode")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// no account, no session
	assert.Equal(t, 0, deps.repo.Count())
	_, env := getJSON(t, client, srv.URL+"/api/me")
	assert.Nil(t, dataView(t, env))
}

func TestTwitterCallbackWithoutFlow(t *testing.T) {
	srv, deps := newTestServer(t)
	client := newBrowser(t)

	// no state cookie in the jar
	resp, err := client.Get(srv.URL + "/auth/twitter/callback?state=whatever&code=authcode")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, deps.repo.Count())
}

func TestTwitterProviderDenial(t *testing.T) {
	srv, deps := newTestServer(t)
	client := newBrowser(t)
	deps.provider.err = errors.New("exchange refused")

	state := startTwitterFlow(t, client, srv.URL)

	resp, err := client.Get(srv.URL + "/auth/twitter/callback?state=" + state + "&code=authcode")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, deps.repo.Count())
}

func TestTwitterMergeKeepsLocalAccount(t *testing.T) {
	srv, deps := newTestServer(t)
	client := newBrowser(t)
	deps.provider.profile = &oauth.Profile{ID: "tw-bob", Emails: []string{"bob5@bob.com"}}

	body := map[string]string{"email": "bob5@bob.com", "password": "jlkajoioiqwe"}
	resp, _ := postJSON(t, client, srv.URL+"/api/register", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	state := startTwitterFlow(t, client, srv.URL)
	cb, err := client.Get(srv.URL + "/auth/twitter/callback?state=" + state + "&code=authcode")
	require.NoError(t, err)
	_ = cb.Body.Close()
	require.Equal(t, http.StatusFound, cb.StatusCode)

	// one account, now carrying the external id, password login intact
	assert.Equal(t, 1, deps.repo.Count())
	resp, env := postJSON(t, newBrowser(t), srv.URL+"/api/login", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}
