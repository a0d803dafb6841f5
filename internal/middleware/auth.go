package middleware

import (
	"net/http"
	"strings"

	"github.com/alumnihub/alumnihub-api/pkg/jwt"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetricsAuthMiddleware protects operational endpoints with a static bearer token.
// An empty token leaves the endpoint open, which is how local setups scrape it.
func MetricsAuthMiddleware(validToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validToken == "" {
			c.Next()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			token = c.GetHeader("x-metrics-auth-token")
		}

		if token == "" || !jwt.TimingSafeCompare(token, validToken) {
			logger.Warn("Invalid metrics token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing metrics token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
