package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	usersapp "github.com/thinkfashz/Osart/internal/domains/users/application"
	usersdomain "github.com/thinkfashz/Osart/internal/domains/users/domain"
	apierrors "github.com/thinkfashz/Osart/internal/shared/errors"
)

const claimsContextKey = "session-claims"

// AuthMiddleware gates routes on the JWT issued at login.
type AuthMiddleware struct {
	users *usersapp.Service
}

func NewAuthMiddleware(users *usersapp.Service) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// RequireAdmin aborts unless the bearer token carries the admin role.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		if claims.Role != string(usersdomain.RoleAdmin) {
			apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("admin role required"))
			c.Abort()
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireSession aborts unless a valid bearer token is present.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*usersapp.Claims, bool) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
		c.Abort()
		return nil, false
	}
	claims, err := m.users.ParseToken(strings.TrimSpace(token))
	if err != nil {
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid session token"))
		c.Abort()
		return nil, false
	}
	return claims, true
}

// sessionClaims retrieves the claims stored by the middleware.
func sessionClaims(c *gin.Context) (*usersapp.Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*usersapp.Claims)
	return claims, ok
}
