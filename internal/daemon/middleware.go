package daemon

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sidebar/internal/logging"
)

func loggingMiddleware(logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Nop()
	}
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-Id", reqID)
		start := time.Now()
		c.Next()
		logger.Info("http_request",
			logging.F("request_id", reqID),
			logging.F("method", c.Request.Method),
			logging.F("path", c.Request.URL.Path),
			logging.F("status", c.Writer.Status()),
			logging.F("bytes", c.Writer.Size()),
			logging.F("latency_ms", time.Since(start).Milliseconds()),
		)
	}
}

// tokenAuthMiddleware guards /v1 routes when a token is configured.
func tokenAuthMiddleware(token string) gin.HandlerFunc {
	token = strings.TrimSpace(token)
	return func(c *gin.Context) {
		if token == "" || !strings.HasPrefix(c.Request.URL.Path, "/v1/") {
			c.Next()
			return
		}
		const prefix = "Bearer "
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, prefix) || strings.TrimSpace(auth[len(prefix):]) != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
