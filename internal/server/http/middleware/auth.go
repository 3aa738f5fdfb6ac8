package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
)

const (
	// OwnerIDContextKey is a gin context key for the authenticated owner identifier.
	OwnerIDContextKey = "ownerID"
	authCookieName    = "orderdesk_token"
)

// TokenAuthorizer resolves a bearer token to the owner it was issued for.
type TokenAuthorizer interface {
	Authorize(token string) (string, error)
}

// OwnerRequired ensures the request carries a valid owner token.
func OwnerRequired(authorizer TokenAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ownerID, err := authorizer.Authorize(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(OwnerIDContextKey, ownerID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/api/owner", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
