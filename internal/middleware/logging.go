// internal/middleware/logging.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abinexis/homepage-admin/internal/services"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's request id, or assigns one, so the
// same id reaches the homepage backend.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		// Skip health checks and metric scrapes
		if c.Request.URL.Path == "/health" || c.Request.URL.Path == "/metrics" {
			return
		}

		operator, _ := c.Get("operator")
		requestID, _ := c.Get("request_id")
		entry := logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   duration.Milliseconds(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
			"operator":   operator,
			"request_id": requestID,
		})

		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Warn("Request processed with errors")
			return
		}
		entry.Info("Request processed")
	}
}
