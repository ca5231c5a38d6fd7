package utils

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// BcryptHasher hashes and verifies passwords with bcrypt
type BcryptHasher struct {
	cost int // bcrypt work factor
}

// NewBcryptHasher returns a hasher using cost, falling back to bcrypt.DefaultCost when out of range
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost // Out of range, use default
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost) // Hash with configured cost
	if err != nil {
		return "", err // Too long or internal failure
	}
	return string(hash), nil
}

// Compare reports whether password matches the stored hash; an empty hash never matches
func (h *BcryptHasher) Compare(hash, password string) bool {
	if hash == "" {
		return false // Account has no usable password
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
