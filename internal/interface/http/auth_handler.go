package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-auth/internal/application"
	"github.com/oksasatya/go-session-auth/internal/interface/middleware"
	"github.com/oksasatya/go-session-auth/internal/session"
	"github.com/oksasatya/go-session-auth/pkg/helpers"
	"github.com/oksasatya/go-session-auth/pkg/response"
	"github.com/oksasatya/go-session-auth/pkg/validation"
)

// AuthHandler exposes the register/login/logout/me operations plus the
// password-reset endpoints. All of them act on the caller's current session.
type AuthHandler struct {
	Svc      *application.Service
	Sessions *session.Manager
	Cookies  *helpers.CookieManager
	Logger   *logrus.Logger
}

func NewAuthHandler(svc *application.Service, sessions *session.Manager, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Sessions: sessions, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	view, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrDuplicateEmail) {
			response.Error[any](c, http.StatusBadRequest, "email already taken", map[string]string{"email": "already taken"})
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("register failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, view, "registered")
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sess := middleware.GetSession(c)
	view, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, sess)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidCredentials):
			// one message for unknown email, OAuth-only account and wrong
			// password; never tell them apart
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		case errors.Is(err, application.ErrAccountLocked):
			response.Error[any](c, http.StatusForbidden, "account locked pending password reset", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("login failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		}
		return
	}

	h.Cookies.Set(c, sess.Token(), h.Sessions.TTL())
	response.Success(c, http.StatusOK, view, "login successful")
}

// Logout POST /api/logout
// Clears the current session only; sibling sessions stay logged in.
// Idempotent: succeeds with or without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.Svc.Logout(c.Request.Context(), sess); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("logout failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "logout failed", nil)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out")
}

// Me GET /api/me
// Returns the public view of the current user, or null for anonymous
// sessions.
func (h *AuthHandler) Me(c *gin.Context) {
	view, err := h.Svc.Me(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("me lookup failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "lookup failed", nil)
		return
	}
	response.Success(c, http.StatusOK, view, "me")
}

type resetInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

// ResetInit POST /api/reset/init
// Always answers OK so account existence cannot be probed.
func (h *AuthHandler) ResetInit(c *gin.Context) {
	var req resetInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if _, err := h.Svc.ResetInit(c.Request.Context(), req.Email); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("reset init failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "reset unavailable", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"sent": true}, "reset link sent if the account exists")
}

// ResetConfirm POST /api/reset/confirm
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetConfirm(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("reset confirm failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "reset failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"reset": true}, "password updated")
}
