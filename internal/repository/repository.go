// Package repository persists accounts and products through GORM.
package repository

import (
	"context"
	"errors"

	"catalog_service/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// AccountRepository stores accounts.
type AccountRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// EmailTaken reports whether another account than excludeID uses email.
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// ProductRepository stores products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	// ListBySeller returns the seller's products ordered by ascending price.
	ListBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error)
}
