// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"strings"

	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// IdentityKey is the context key for the authenticated identity
	IdentityKey = "identity"
	// UserUIDKey is the context key for the authenticated user's UID
	UserUIDKey = "userUID"
	// UserEmailKey is the context key for the authenticated user's email
	UserEmailKey = "userEmail"
)

// TokenVerifier verifies a provider ID token and returns the identity it
// carries. Implemented by firebase.Service.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (shared.Identity, error)
}

// AuthMiddleware creates a Gin middleware that validates Firebase ID tokens.
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid", zap.String("header", authHeader))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		identity, err := verifier.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("ID token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails(err.Error()))
			return
		}

		// Set identity information in context for downstream handlers
		c.Set(IdentityKey, identity)
		c.Set(UserUIDKey, identity.UID)
		c.Set(UserEmailKey, identity.Email)

		logger.Debug("User authenticated successfully",
			zap.String("uid", identity.UID),
			zap.String("email", identity.Email),
		)

		c.Next()
	}
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin
// context. The second return is false when no identity was set.
func GetIdentityFromContext(c *gin.Context) (shared.Identity, bool) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return shared.Identity{}, false
	}
	identity, ok := val.(shared.Identity)
	if !ok {
		return shared.Identity{}, false
	}
	return identity, true
}

// GetUserUIDFromContext retrieves the user UID from the Gin context.
// Returns "" if not found.
func GetUserUIDFromContext(c *gin.Context) string {
	val, exists := c.Get(UserUIDKey)
	if !exists {
		return ""
	}
	uid, ok := val.(string)
	if !ok {
		return ""
	}
	return uid
}
