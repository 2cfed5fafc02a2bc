package middleware

import (
	"time"

	"swiftpost/internal/interceptor"
	"swiftpost/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestLogger tags each request with an id, propagates it to outgoing API calls
// and logs the outcome
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(interceptor.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header(interceptor.HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(interceptor.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		log.Infow("Request processed",
			"request_id", requestID,
			"method", c.Request.Method,
			"endpoint", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).Milliseconds(),
		)
	}
}

// RequestID returns the id RequestLogger assigned, or ""
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
