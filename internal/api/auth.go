package api

import (
	"catalog_service/internal/domain"     // Importing domain models
	"catalog_service/internal/metrics"    // Prometheus collectors
	"catalog_service/internal/middleware" // Request ID lookup
	"catalog_service/internal/repository" // Account storage
	"catalog_service/internal/utils"      // JWT utility functions
	"catalog_service/internal/validation" // Payload validators
	"errors"                              // Error comparison
	"net/http"                            // HTTP status codes
	"time"                                // Token lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// MsgEmailTaken is reported on email when another account already uses the address
const MsgEmailTaken = "user with this email address already exists."

// Credentials hashes new passwords and checks presented ones
type Credentials interface {
	validation.PasswordHasher
	Compare(hash, password string) bool
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Email string `json:"email"` // Normalized email
	Token string `json:"token"` // JWT token
}

// SignupHandler registers a new account
func SignupHandler(accounts repository.AccountRepository, hasher validation.PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.AccountInput // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		validator := validation.NewAccountValidator(validation.ModeCreate, hasher) // Registration rules
		acc, err := validator.Validate(req)
		if err != nil {
			// If invalid, return the field errors
			respondValidation(c, "account", err)
			return
		}
		ctx := c.Request.Context() // Request scoped context
		// Email must be unique among accounts
		if !ensureEmailFree(c, accounts, acc.Email, 0) {
			return
		}
		var user domain.User // New account record
		if err := validator.Finalize(acc, &user); err != nil {
			respondInternal(c, "Failed to hash password", err)
			return
		}
		// Attempt to create the account in the database
		if err := accounts.Create(ctx, &user); err != nil {
			respondInternal(c, "Failed to create account", err)
			return
		}
		metrics.AccountsRegistered.Inc() // Count registrations
		logrus.WithFields(logrus.Fields{
			"request_id":   middleware.RequestID(c),         // Request ID
			"account_id":   user.ID,                         // New account ID
			"has_password": user.HasUsablePassword(),        // Whether a password was set
			"timestamp":    time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Account registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"user": NewAccountResponse(&user)})
	}
}

// LoginHandler checks credentials and returns a JWT token
func LoginHandler(accounts repository.AccountRepository, creds Credentials, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.LoginInput // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		email, password, err := validation.ValidateLogin(req) // Structural validation only
		if err != nil {
			respondValidation(c, "login", err)
			return
		}
		user, err := accounts.FindByEmail(c.Request.Context(), email) // Fetch account from database
		if errors.Is(err, repository.ErrNotFound) {
			// If account not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			respondInternal(c, "Failed to load account", err)
			return
		}
		// Compare provided password with stored hash
		if !creds.Compare(user.Password, password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl)
		if err != nil {
			respondInternal(c, "Failed to generate token", err)
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, LoginResponse{Email: user.Email, Token: token})
	}
}

// UpdateProfileHandler replaces the viewer's username, email and password
func UpdateProfileHandler(accounts repository.AccountRepository, hasher validation.PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := currentAccount(c) // Viewer set by LoadAccountMiddleware
		if !ok {
			return
		}
		var req validation.AccountInput // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		validator := validation.NewAccountValidator(validation.ModeUpdate, hasher) // Profile update rules
		acc, err := validator.Validate(req)
		if err != nil {
			respondValidation(c, "account", err)
			return
		}
		// Email must stay unique, ignoring the viewer's own row
		if !ensureEmailFree(c, accounts, acc.Email, account.ID) {
			return
		}
		updated := *account // Work on a copy until stored
		if err := validator.Finalize(acc, &updated); err != nil {
			respondInternal(c, "Failed to hash password", err)
			return
		}
		if err := accounts.Update(c.Request.Context(), &updated); err != nil {
			respondInternal(c, "Failed to update account", err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.RequestID(c), // Request ID
			"account_id": updated.ID,              // Updated account
		}).Info("Account updated")
		c.JSON(http.StatusOK, gin.H{"user": NewAccountResponse(&updated)})
	}
}

// ensureEmailFree writes a 422 (or 500) and returns false when email belongs to another account
func ensureEmailFree(c *gin.Context, accounts repository.AccountRepository, email string, excludeID uint) bool {
	taken, err := accounts.EmailTaken(c.Request.Context(), email, excludeID)
	if err != nil {
		respondInternal(c, "Failed to check email", err)
		return false
	}
	if taken {
		respondValidation(c, "account", validation.FieldErrors{"email": {MsgEmailTaken}})
		return false
	}
	return true
}
