package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jdih-api/internal/auth"
	"jdih-api/internal/domain"
	"jdih-api/internal/service"
	"jdih-api/internal/validation"
)

const usersTable = "users"

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}

func (h *Handler) login(c *gin.Context) {
	var req validation.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		h.respondValidation(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgBadCredentials})
			return
		}
		h.respondInternal(c, err, "authenticate")
		return
	}

	token, _, err := h.tokens.Issue(user)
	if err != nil {
		h.respondInternal(c, err, "issue token")
		return
	}

	h.audit.Record(ctx, actorFor(c, user.ID).Entry(domain.AuditActionLogin, usersTable, user.ID))

	h.setSessionCookie(c, token, int(h.tokens.TTL().Seconds()))
	c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login berhasil",
		User:    userToResponse(user),
		Token:   token,
	})
}

// logout always succeeds and clears the session cookie. A LOGOUT entry is
// recorded only when the presented token still resolves to a user.
func (h *Handler) logout(c *gin.Context) {
	ctx := c.Request.Context()
	if token := requestToken(c); token != "" {
		user, err := h.users.ResolveToken(ctx, token)
		switch {
		case err == nil:
			h.audit.Record(ctx, actorFor(c, user.ID).Entry(domain.AuditActionLogout, usersTable, user.ID))
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, service.ErrUserNotFound):
		default:
			h.logger.WithError(err).Warn("resolve session on logout")
		}
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout berhasil"})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(currentUser(c))})
}
