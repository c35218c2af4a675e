// util/http_util.go
package util

import (
	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// RequestContext identifies the UI surface behind a request for probe
// deduplication. Falls back to the client address when no header is sent.
func RequestContext(c *gin.Context) string {
	if ctx := c.GetHeader("X-Request-Context"); ctx != "" {
		return ctx
	}
	return c.ClientIP()
}
