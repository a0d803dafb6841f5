package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// UserSessionContextKey is the key used to store the session in the gin context
const UserSessionContextKey = "user_session"

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// UserSessionMiddleware validates the session JWT issued by the identity provider and
// adds the session to context. The token is read from the session cookie, falling
// back to an Authorization: Bearer header for non-browser clients.
func UserSessionMiddleware(tokenManager *jwt.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			_ = c.Error(fmt.Errorf("missing session token")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck
			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		session := &models.UserSession{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
			Role:   models.ParseRole(claims.Role),
		}
		if claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Unix()
		}
		if claims.IssuedAt != nil {
			session.IssuedAt = claims.IssuedAt.Unix()
		}

		c.Set(UserSessionContextKey, session)
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// GetUserSession extracts the session from context
func GetUserSession(c *gin.Context) (*models.UserSession, error) {
	val, exists := c.Get(UserSessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.UserSession)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}
