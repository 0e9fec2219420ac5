// internal/middleware/logging.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/ecommerce-api/internal/logging"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, attaches a logger entry carrying
// it to the request context and logs one line when the request completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		entry := logrus.WithField("request_id", requestID)
		c.Request = c.Request.WithContext(logging.WithEntry(c.Request.Context(), entry))

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   duration.Milliseconds(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}
		if userID, exists := c.Get("user_id"); exists {
			fields["user_id"] = userID
		}

		logger := entry.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("Request processed")
		case status >= 400:
			logger.Warn("Request processed")
		default:
			logger.Info("Request processed")
		}
	}
}
