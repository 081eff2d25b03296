package middleware

import (
	"net/http"
	"strings"

	"go-careermatch-backend/internal/delivery/http/response"
	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/logger"
	"go-careermatch-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and rejects revoked ones. Every
// failure mode returns the same generic 401 so callers cannot distinguish
// a bad signature from a revoked or expired token.
func AuthMiddleware(codec *token.Codec, revoker token.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			unauthorized(c)
			return
		}

		claims, err := codec.Verify(tokenString)
		if err != nil {
			unauthorized(c)
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			logger.Log.Error("revocation check failed", "error", err)
			unauthorized(c)
			return
		}
		if revoked {
			unauthorized(c)
			return
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserRole), claims.Role)
		c.Set(string(domain.KeyToken), tokenString)

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	response.Error(c, http.StatusUnauthorized, "Invalid or missing token", nil)
	c.Abort()
}

// RequireRole guards a route group behind one of the given roles. Runs after
// AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
		c.Abort()
	}
}
