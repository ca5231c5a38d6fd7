package api

import (
	"catalog_service/internal/domain"     // Importing domain models
	"catalog_service/internal/metrics"    // Prometheus collectors
	"catalog_service/internal/middleware" // Request ID lookup
	"catalog_service/internal/validation" // Field error type
	"errors"                              // Error inspection
	"io"                                  // Empty body detection
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// bindJSON decodes the request body into dest; an empty body counts as {}
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		// If decoding fails, return bad request
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}

// respondValidation writes FieldErrors as 422; any other error is a 500
func respondValidation(c *gin.Context, entity string, err error) {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		metrics.ValidationFailures.WithLabelValues(entity).Inc() // Count rejected payloads
		c.JSON(http.StatusUnprocessableEntity, fieldErrs)       // Field name -> messages
		return
	}
	respondInternal(c, "Validation failed", err)
}

// respondInternal logs err and writes a generic 500
func respondInternal(c *gin.Context, msg string, err error) {
	logrus.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c), // Request ID
		"path":       c.FullPath(),            // Route
		"error":      err.Error(),             // Error message
	}).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// currentAccount fetches the viewer or writes 401
func currentAccount(c *gin.Context) (*domain.User, bool) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return account, true
}
