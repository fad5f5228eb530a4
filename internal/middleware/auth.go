package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/auth"
	"portfolio_backend/pkg/apperrors"
)

const (
	ctxUserID   = "auth.user_id"
	ctxUsername = "auth.username"
	ctxRole     = "auth.role"
)

// RequireAuth validates the bearer token and stores the claims on the
// request context for handlers downstream.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("missing authorization header"))
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func GetUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}

func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}
