package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campaignhub-backend/internal/shared"
	"campaignhub-backend/internal/shared/response"
	"campaignhub-backend/pkg/jwt"
)

// ContextIdentity is the context key AuthMiddleware stores the resolved
// caller identity under.
const ContextIdentity = "identity"

// AuthMiddleware validates the bearer token and stashes the resolved
// identity on the request context. Core services never read this context
// themselves - handlers extract the caller ID and pass it explicitly.
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify and parse
		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			c.Abort()
			return
		}

		// 4. Stash resolved identity for handlers
		c.Set(ContextIdentity, shared.Identity{
			ID:    userID,
			Email: claims.Email,
			Name:  claims.Name,
		})

		c.Next()
	}
}

// Caller extracts the authenticated identity set by AuthMiddleware
func Caller(c *gin.Context) (shared.Identity, bool) {
	v, exists := c.Get(ContextIdentity)
	if !exists {
		return shared.Identity{}, false
	}
	identity, ok := v.(shared.Identity)
	return identity, ok
}

// CallerID is the common case: handlers that only need the user ID
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	identity, ok := Caller(c)
	if !ok {
		return uuid.Nil, false
	}
	return identity.ID, true
}
