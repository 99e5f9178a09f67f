package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acadflow/ethics-review/internal/domain/workflow"
	"github.com/acadflow/ethics-review/pkg/auth"
)

const identityKey = "identity"

// Identity is the authenticated caller attached to the request context
type Identity struct {
	UserID int64
	Role   workflow.Role
}

// RequireAuth validates the bearer token and attaches the caller identity
func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Legacy tokens may carry numeric role codes; normalize once here so
		// everything behind the middleware sees canonical roles.
		role, err := workflow.ResolveRole(claims.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown role in token"})
			return
		}

		c.Set(identityKey, Identity{UserID: claims.UserID, Role: role})
		c.Next()
	}
}

// RequireAdmin allows only administrative roles through
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := callerIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !identity.Role.IsAdministrative() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrator access required"})
			return
		}
		c.Next()
	}
}

func callerIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
