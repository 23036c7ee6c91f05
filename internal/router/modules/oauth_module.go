package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-session-auth/internal/interface/http"
)

// OAuthModule registers the side-channel routes at the engine root: the
// email-confirmation link target and the Twitter OAuth redirect pair.
type OAuthModule struct {
	Confirm *handlers.ConfirmHandler
	Twitter *handlers.TwitterHandler
}

func NewOAuthModule(confirm *handlers.ConfirmHandler, twitter *handlers.TwitterHandler) *OAuthModule {
	return &OAuthModule{Confirm: confirm, Twitter: twitter}
}

func (m *OAuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/confirm/:id", m.Confirm.Confirm)
	rg.GET("/auth/twitter", m.Twitter.Redirect)
	rg.GET("/auth/twitter/callback", m.Twitter.Callback)
}
