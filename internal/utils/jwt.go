package utils

import (
	"errors"  // Error construction
	"strconv" // Subject formatting
	"time"    // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken is returned for tokens that fail validation
var ErrInvalidToken = errors.New("invalid token")

// JWT Claims
type Claims struct {
	AccountID            uint `json:"account_id"` // Custom claim for account ID
	jwt.RegisteredClaims                           // Standard JWT claims
}

// GenerateJWT creates a signed token for the given account ID valid for ttl
func GenerateJWT(accountID uint, secret string, ttl time.Duration) (string, error) {
	now := time.Now() // Single timestamp for issued/expiry
	// Set token claims
	claims := Claims{
		AccountID: accountID, // Custom claim for account ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(accountID), 10), // Account ID as subject
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),          // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),                   // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a token string, accepting only HS256 signatures
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.AccountID != 0 {
		return claims, nil // Return claims if valid
	}
	return nil, ErrInvalidToken
}
