package handlers_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmGet(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestConfirmLink(t *testing.T) {
	srv, deps := newTestServer(t)
	client := newBrowser(t)

	resp, env := postJSON(t, client, srv.URL+"/api/register", map[string]string{
		"email": "bob5@bob.com", "password": "jlkajoioiqwe",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	view := dataView(t, env)
	require.NotNil(t, view)

	tok, err := deps.confirm.Generate(view.ID)
	require.NoError(t, err)

	status, body := confirmGet(t, client, srv.URL+"/confirm/"+tok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	u, err := deps.repo.GetByID(context.Background(), view.ID)
	require.NoError(t, err)
	assert.True(t, u.Confirmed)

	// clicking the link twice answers ok both times
	status, body = confirmGet(t, client, srv.URL+"/confirm/"+tok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestConfirmLinkInvalid(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newBrowser(t)

	status, body := confirmGet(t, client, srv.URL+"/confirm/garbage")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "invalid", body)
}

func TestConfirmDoesNotLogIn(t *testing.T) {
	srv, deps := newTestServer(t)
	client := newBrowser(t)

	resp, env := postJSON(t, client, srv.URL+"/api/register", map[string]string{
		"email": "bob5@bob.com", "password": "jlkajoioiqwe",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	view := dataView(t, env)
	require.NotNil(t, view)

	tok, err := deps.confirm.Generate(view.ID)
	require.NoError(t, err)
	status, _ := confirmGet(t, client, srv.URL+"/confirm/"+tok)
	require.Equal(t, http.StatusOK, status)

	_, env = getJSON(t, client, srv.URL+"/api/me")
	assert.Nil(t, dataView(t, env))
}
