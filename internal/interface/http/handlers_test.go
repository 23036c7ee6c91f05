package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-session-auth/config"
	"github.com/oksasatya/go-session-auth/internal/application"
	"github.com/oksasatya/go-session-auth/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-session-auth/internal/interface/http"
	"github.com/oksasatya/go-session-auth/internal/interface/middleware"
	"github.com/oksasatya/go-session-auth/internal/oauth"
	"github.com/oksasatya/go-session-auth/internal/session"
	"github.com/oksasatya/go-session-auth/pkg/helpers"
	"github.com/oksasatya/go-session-auth/pkg/validation"
)

const frontendHost = "http://localhost:3000"

type testDeps struct {
	repo     *memory.UserRepository
	sessions *session.Manager
	confirm  *helpers.ConfirmTokenManager
	svc      *application.Service
	provider *fakeProvider
}

// fakeProvider stands in for the Twitter round-trip so handler tests never
// touch the network.
type fakeProvider struct {
	profile *oauth.Profile
	err     error
}

func (f *fakeProvider) AuthCodeURL(state, _ string) string {
	return "https://provider.example/authorize?state=" + state
}

func (f *fakeProvider) FetchProfile(_ context.Context, _, _ string) (*oauth.Profile, error) {
	return f.profile, f.err
}

var _ oauth.Provider = (*fakeProvider)(nil)

func newTestServer(t *testing.T) (*httptest.Server, *testDeps) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := memory.NewUserRepository()
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour)
	cookies := helpers.NewCookie("cookie", "", false)
	confirm := helpers.NewConfirmTokenManager("testsecret", time.Hour)
	svc := application.NewService(repo, nil, logger, nil, confirm, nil, "", config.Load())
	provider := &fakeProvider{}

	auth := handlers.NewAuthHandler(svc, sessions, cookies, logger)
	conf := handlers.NewConfirmHandler(svc, logger)
	twitter := handlers.NewTwitterHandler(provider, svc, sessions, cookies, logger, frontendHost)

	engine := gin.New()
	engine.Use(middleware.Session(sessions, "cookie", logger))

	api := engine.Group("/api")
	api.POST("/register", auth.Register)
	api.POST("/login", auth.Login)
	api.POST("/logout", auth.Logout)
	api.GET("/me", auth.Me)
	api.POST("/reset/init", auth.ResetInit)
	api.POST("/reset/confirm", auth.ResetConfirm)

	engine.GET("/confirm/:id", conf.Confirm)
	engine.GET("/auth/twitter", twitter.Redirect)
	engine.GET("/auth/twitter/callback", twitter.Callback)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return srv, &testDeps{repo: repo, sessions: sessions, confirm: confirm, svc: svc, provider: provider}
}

// newBrowser returns a client with its own cookie jar, standing in for one
// browser. Redirects are not followed so tests can inspect them.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func postJSON(t *testing.T, client *http.Client, url string, body any) (*http.Response, envelope) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp, decodeEnvelope(t, resp)
}

func getJSON(t *testing.T, client *http.Client, url string) (*http.Response, envelope) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	return resp, decodeEnvelope(t, resp)
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func dataView(t *testing.T, env envelope) *application.UserView {
	t.Helper()
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	var v application.UserView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return &v
}
