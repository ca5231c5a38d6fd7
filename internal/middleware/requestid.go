package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request ID generation
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// RequestIDMiddleware accepts the client's X-Request-ID or generates a UUID, and echoes it back
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader) // Use caller supplied ID if any
		if requestID == "" {
			requestID = uuid.New().String() // Otherwise generate one
		}
		c.Set(requestIDKey, requestID)       // Store for handlers and logs
		c.Header(RequestIDHeader, requestID) // Echo in response
		c.Next()                             // Proceed to the next handler
	}
}

// RequestID returns the current request ID, or "" outside RequestIDMiddleware
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
