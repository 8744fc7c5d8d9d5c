package middleware

import (
	"github.com/gin-gonic/gin"

	"user-page-service/pkg/logger"
)

// RequestID propagates the incoming X-Request-ID header, or generates one,
// into the request context and the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(logger.RequestIDHeader)
		if requestID == "" {
			requestID = logger.NewRequestID()
		}

		ctx := logger.ContextWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(logger.RequestIDHeader, requestID)

		c.Next()
	}
}
