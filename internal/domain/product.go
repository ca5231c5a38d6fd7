package domain

import "github.com/shopspring/decimal"

// Product Model
type Product struct {
	ID       uint                `gorm:"primaryKey"`                   // Primary key
	Name     string              `gorm:"size:20;not null"`             // Product name
	Price    decimal.NullDecimal `gorm:"type:decimal(10,2)"`           // Optional price with two fractional digits
	SellerID *uint               `gorm:"index"`                        // Foreign key to the selling User, nullable
	Seller   *User               `gorm:"constraint:OnDelete:CASCADE;"` // Selling account
}

func (p Product) String() string {
	return p.Name
}
