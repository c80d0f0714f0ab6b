package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/doctor-portal-api/internal/auth"
	"github.com/clinicware/doctor-portal-api/internal/models"
)

// ContextEmailKey is where RequireAuth stores the verified email for
// downstream handlers.
const ContextEmailKey = "decodedEmail"

// RoleLookup resolves a verified email to the stored user role; an
// unknown email resolves to the empty role. Injected so the guard can
// be exercised without a live database.
type RoleLookup func(ctx context.Context, email string) (string, error)

// RequireAuth is stage one of the access guard: a missing token is
// unauthorized, a token that fails verification is forbidden.
func RequireAuth(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		tokenStr := header
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
			tokenStr = parts[1]
		}

		email, err := manager.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}

		c.Set(ContextEmailKey, email)
		c.Next()
	}
}

// RequireAdmin is stage two: the verified email must belong to a user
// whose role is admin. Must run after RequireAuth.
func RequireAdmin(lookup RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextEmailKey)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		role, err := lookup(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "role lookup failed"})
			return
		}
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			return
		}

		c.Next()
	}
}
