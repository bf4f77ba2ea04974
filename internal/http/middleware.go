package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jdih-api/internal/auth"
	"jdih-api/internal/domain"
	"jdih-api/internal/service"
)

const (
	sessionCookie  = "auth-token"
	userContextKey = "currentUser"
	unknownValue   = "unknown"
)

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := h.logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": clientIP(c),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request completed")
			return
		}
		entry.Info("request completed")
	}
}

// identify attaches the session user to the context when a valid token is
// presented. Requests without a usable token continue anonymously.
func (h *Handler) identify(c *gin.Context) {
	token := requestToken(c)
	if token == "" {
		c.Next()
		return
	}

	user, err := h.users.ResolveToken(c.Request.Context(), token)
	switch {
	case err == nil:
		c.Set(userContextKey, user)
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, service.ErrUserNotFound):
	default:
		h.respondInternal(c, err, "resolve session")
		c.Abort()
		return
	}
	c.Next()
}

func (h *Handler) requireAuth(c *gin.Context) {
	if currentUser(c) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthenticated})
		return
	}
	c.Next()
}

func (h *Handler) requireAdmin(c *gin.Context) {
	if !currentUser(c).IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgForbidden})
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// requestToken prefers the Authorization header over the session cookie.
func requestToken(c *gin.Context) string {
	if token, ok := auth.ExtractBearer(c.GetHeader("Authorization")); ok {
		return token
	}
	if token, err := c.Cookie(sessionCookie); err == nil {
		return strings.TrimSpace(token)
	}
	return ""
}

// clientIP takes the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(c.GetHeader("X-Real-IP")); realIP != "" {
		return realIP
	}
	return unknownValue
}

func userAgent(c *gin.Context) string {
	if ua := c.GetHeader("User-Agent"); ua != "" {
		return ua
	}
	return unknownValue
}

func actorFor(c *gin.Context, userID int64) service.Actor {
	return service.Actor{
		UserID:    userID,
		IP:        clientIP(c),
		UserAgent: userAgent(c),
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", h.secureCookies, true)
}
