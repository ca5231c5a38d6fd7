package middleware

import (
	"strconv" // Status label formatting
	"time"    // Request latency

	"catalog_service/internal/metrics" // Prometheus collectors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RequestLogger logs every request with logrus and records HTTP metrics
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now() // Request start
		c.Next()            // Run the rest of the chain

		route := c.FullPath() // Route template keeps label cardinality low
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status() // Final status code
		latency := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		// /metrics and /ping are scraped too often to log
		if route == "/metrics" || route == "/ping" {
			return
		}
		entry := logrus.WithFields(logrus.Fields{
			"request_id": RequestID(c),       // Request ID
			"method":     c.Request.Method,   // HTTP method
			"path":       c.Request.URL.Path, // Request path
			"status":     status,             // Response status
			"latency":    latency.String(),   // Duration
			"client_ip":  c.ClientIP(),       // Caller address
			"size":       c.Writer.Size(),    // Response bytes
		})
		if status >= 500 {
			entry.Error("Request failed")
			return
		}
		entry.Info("Request handled")
	}
}
