package repository

import (
	"context" // Request scoped queries
	"fmt"     // Error wrapping

	"catalog_service/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// GormProductRepository is the GORM backed ProductRepository
type GormProductRepository struct {
	db *gorm.DB // Database handle
}

var _ ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository returns a ProductRepository over db
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts product without touching its Seller association
func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Omit("Seller").Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// ListBySeller orders by price only; rows with equal or NULL prices come back
// in whatever order MySQL yields them.
func (r *GormProductRepository) ListBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error) {
	var products []domain.Product // Seller's products
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID). // Viewer's products only
		Order("price").                   // Cheapest first
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products of seller %d: %w", sellerID, err)
	}
	return products, nil
}
