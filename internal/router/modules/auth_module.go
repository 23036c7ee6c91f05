package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-session-auth/internal/container"
	handlers "github.com/oksasatya/go-session-auth/internal/interface/http"
	"github.com/oksasatya/go-session-auth/internal/interface/middleware"
)

// AuthModule wires the session-auth operations under /api.
// Public: POST /api/register, /api/login, /api/logout; GET /api/me;
// POST /api/reset/init, /api/reset/confirm.
// Logout and me are deliberately public: both are well-defined for anonymous
// sessions (silent no-op and null, respectively).
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	resetInitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)
	rg.GET("/me", m.Handler.Me)

	rg.POST("/reset/init", resetInitLimiter, m.Handler.ResetInit)
	rg.POST("/reset/confirm", resetConfirmLimiter, m.Handler.ResetConfirm)
}
