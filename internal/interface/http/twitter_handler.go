package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/oksasatya/go-session-auth/internal/application"
	"github.com/oksasatya/go-session-auth/internal/interface/middleware"
	"github.com/oksasatya/go-session-auth/internal/oauth"
	"github.com/oksasatya/go-session-auth/internal/session"
	"github.com/oksasatya/go-session-auth/pkg/helpers"
)

const (
	stateCookie    = "oauthstate"
	verifierCookie = "oauthverifier"
	// the provider round-trip should finish well within this window
	oauthCookieMaxAge = 600
)

// TwitterHandler drives the Twitter OAuth round-trip: redirect out with
// state+PKCE, then reconcile the returned profile into a local account and
// log it into the caller's session.
type TwitterHandler struct {
	Provider     oauth.Provider
	Svc          *application.Service
	Sessions     *session.Manager
	Cookies      *helpers.CookieManager
	Logger       *logrus.Logger
	FrontendHost string
}

func NewTwitterHandler(provider oauth.Provider, svc *application.Service, sessions *session.Manager, cookies *helpers.CookieManager, logger *logrus.Logger, frontendHost string) *TwitterHandler {
	return &TwitterHandler{Provider: provider, Svc: svc, Sessions: sessions, Cookies: cookies, Logger: logger, FrontendHost: frontendHost}
}

// Redirect GET /auth/twitter
func (h *TwitterHandler) Redirect(c *gin.Context) {
	state, err := helpers.GenToken(16)
	if err != nil {
		c.String(http.StatusInternalServerError, "authentication unavailable")
		return
	}
	verifier := oauth2.GenerateVerifier()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, oauthCookieMaxAge, "/", "", false, true)
	c.SetCookie(verifierCookie, verifier, oauthCookieMaxAge, "/", "", false, true)

	c.Redirect(http.StatusFound, h.Provider.AuthCodeURL(state, verifier))
}

// Callback GET /auth/twitter/callback
// A failed provider round-trip (denial, bad state, exchange error) touches
// neither accounts nor sessions.
func (h *TwitterHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	wantState, _ := c.Cookie(stateCookie)
	verifier, _ := c.Cookie(verifierCookie)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)
	c.SetCookie(verifierCookie, "", -1, "/", "", false, true)

	if code == "" || state == "" || wantState == "" || state != wantState || verifier == "" {
		c.String(http.StatusUnauthorized, "twitter authentication failed")
		return
	}

	profile, err := h.Provider.FetchProfile(c.Request.Context(), code, verifier)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("twitter round-trip failed")
		}
		c.String(http.StatusUnauthorized, "twitter authentication failed")
		return
	}

	sess := middleware.GetSession(c)
	if _, err := h.Svc.ReconcileTwitter(c.Request.Context(), profile, sess); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("twitter reconciliation failed")
		}
		c.String(http.StatusInternalServerError, "authentication failed")
		return
	}

	h.Cookies.Set(c, sess.Token(), h.Sessions.TTL())
	c.Redirect(http.StatusFound, h.FrontendHost)
}
