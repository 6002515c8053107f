package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/response"
)

// SessionParser validates admin bearer tokens.
type SessionParser interface {
	Parse(ctx context.Context, token string) (*auth.Session, error)
}

// AdminAuth requires a valid, unexpired and unrevoked admin session and stores it in the request context.
func AdminAuth(sessions SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.AbortWithError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session, err := sessions.Parse(ctx, parts[1])
		if err != nil {
			message := "Invalid or expired token"
			switch {
			case errors.Is(err, auth.ErrSessionExpired):
				message = "Session expired"
			case errors.Is(err, auth.ErrSessionRevoked):
				message = "Session revoked"
			}
			response.AbortWithError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
			return
		}

		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))
		c.Set("admin_id", session.AdminID)
		c.Next()
	}
}
