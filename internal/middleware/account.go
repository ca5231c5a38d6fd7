package middleware

import (
	"catalog_service/internal/domain"     // Importing domain models
	"catalog_service/internal/repository" // Account storage
	"errors"                              // Error comparison
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AccountKey is the gin context key holding the authenticated *domain.User
const AccountKey = "account"

// LoadAccountMiddleware resolves the token's account from storage on each request
func LoadAccountMiddleware(accounts repository.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := c.Get(AccountIDKey) // Get account ID set by JWTAuthMiddleware
		// Check if account ID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		account, err := accounts.FindByID(c.Request.Context(), accountID.(uint)) // Fetch account from storage
		if errors.Is(err, repository.ErrNotFound) {
			// Token outlived its account
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": RequestID(c), // Correlate with request log
				"account_id": accountID,    // Account being resolved
				"error":      err.Error(),  // Storage error
			}).Error("Failed to load account")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
			return
		}
		c.Set(AccountKey, account) // Store the viewer for handlers
		c.Next()                   // Proceed to the next handler
	}
}

// CurrentAccount returns the account stored by LoadAccountMiddleware
func CurrentAccount(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(AccountKey) // Get account from context
	if !exists {
		return nil, false
	}
	account, ok := v.(*domain.User) // Assert stored type
	return account, ok
}
