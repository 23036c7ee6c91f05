package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-auth/internal/session"
	"github.com/oksasatya/go-session-auth/pkg/response"
)

const ctxSessionKey = "session"

// Session resolves the inbound session cookie to a session handle and puts
// it into the Gin context for every request. A missing, unknown or expired
// token yields an anonymous session rather than an error.
func Session(mgr *session.Manager, cookieName string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		sess, err := mgr.Load(c.Request.Context(), token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).Warn("session load failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "session unavailable", nil)
			c.Abort()
			return
		}
		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

// GetSession returns the request's session handle. The Session middleware
// must run first.
func GetSession(c *gin.Context) *session.Session {
	v, _ := c.Get(ctxSessionKey)
	sess, _ := v.(*session.Session)
	return sess
}

// RequireUser rejects requests whose session carries no user id.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || sess.UserID() == "" {
			response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
