package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dev-Muhammad-Junaid/links-maker/config"
	lm_errors "github.com/Dev-Muhammad-Junaid/links-maker/errors"
	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
)

// APIKeyAuth gates the API behind a shared key. The browser extension sends
// the key in the Authorization header as a bearer token. An empty configured
// key disables the check, which is the expected mode for local development.
func APIKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.GetString("auth.api_key")
		if expected == "" {
			c.Next()
			return
		}

		provided := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if provided == "" {
			logger.Warn("No Authorization token provided", zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": lm_errors.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			logger.Warn("Invalid API key", zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": lm_errors.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}
