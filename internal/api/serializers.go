package api

import (
	"catalog_service/internal/domain" // Importing domain models
)

// AccountResponse is the public form of an account; credentials are never included
type AccountResponse struct {
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email address
}

// NewAccountResponse serializes an account
func NewAccountResponse(u *domain.User) AccountResponse {
	return AccountResponse{Username: u.Username, Email: u.Email}
}

// ProductResponse is the public form of a product
type ProductResponse struct {
	Name   string  `json:"name"`   // Product name
	Price  *string `json:"price"`  // Fixed two-decimal string, null when unset
	Seller *uint   `json:"seller"` // Seller account ID, null when unset
}

// NewProductResponse serializes a product
func NewProductResponse(p domain.Product) ProductResponse {
	resp := ProductResponse{Name: p.Name, Seller: p.SellerID}
	if p.Price.Valid {
		price := p.Price.Decimal.StringFixed(2) // Always two fractional digits
		resp.Price = &price
	}
	return resp
}

// NewProductResponses serializes a listing; an empty listing becomes [] rather than null
func NewProductResponses(products []domain.Product) []ProductResponse {
	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, NewProductResponse(p))
	}
	return resp
}
