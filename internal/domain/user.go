package domain

import "time"

// User Model
type User struct {
	ID              uint       `gorm:"primaryKey"`                    // Primary key
	Username        string     `gorm:"size:150;not null"`             // Display name
	Email           string     `gorm:"size:254;uniqueIndex;not null"` // Unique login email
	Password        string     `gorm:"not null"`                      // Bcrypt hash; empty means no usable password
	EmailVerifiedAt *time.Time // Set once the address is confirmed
	CreatedAt       time.Time  // Creation timestamp
	UpdatedAt       time.Time  // Last update timestamp
}

// HasUsablePassword reports whether the account can log in with a password
func (u *User) HasUsablePassword() bool {
	return u.Password != ""
}
