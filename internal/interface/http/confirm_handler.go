package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-auth/internal/application"
)

// ConfirmHandler is the email-confirmation link target. It is a plain HTML
// side-channel route, not part of the JSON API.
type ConfirmHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewConfirmHandler(svc *application.Service, logger *logrus.Logger) *ConfirmHandler {
	return &ConfirmHandler{Svc: svc, Logger: logger}
}

// Confirm GET /confirm/:id
// The uniform "invalid" answer covers expired, malformed and unknown tokens
// alike. Confirming an already-confirmed account answers "ok" again.
func (h *ConfirmHandler) Confirm(c *gin.Context) {
	err := h.Svc.ConfirmEmail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, application.ErrNotFound) && h.Logger != nil {
			h.Logger.WithError(err).Error("confirm failed")
		}
		c.String(http.StatusNotFound, "invalid")
		return
	}
	c.String(http.StatusOK, "ok")
}
