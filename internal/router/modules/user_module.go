package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-session-auth/internal/container"
	handlers "github.com/oksasatya/go-session-auth/internal/interface/http"
	"github.com/oksasatya/go-session-auth/internal/interface/middleware"
)

// UserModule wires account queries that need a logged-in session.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireUser())
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil))
	{
		auth.GET("/users/search", m.Handler.Search)
	}
}
