package middleware

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	identityKey   = "identity"
	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// Identity is the authenticated caller stored in the gin context.
type Identity struct {
	UserID  uint
	Email   string
	IsStaff bool
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearer(c, jwtService)
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug("JWT authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			message := "authentication required"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseBearer(c, jwtService); err == nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	header := c.GetHeader(authHeaderKey)
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}
	return jwtService.Validate(tokenString)
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(identityKey, Identity{
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsStaff: claims.IsStaff,
	})
	ctx := c.Request.Context()
	reqLogger := logger.FromContext(ctx).With(zap.Uint("user_id", claims.UserID))
	c.Request = c.Request.WithContext(logger.WithContext(ctx, reqLogger))
}

// CurrentIdentity returns the caller set by RequireAuth or OptionalAuth.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// SetIdentity is used by tests and trusted internal callers.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}
