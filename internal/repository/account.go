package repository

import (
	"context" // Request scoped queries
	"errors"  // Error comparison
	"fmt"     // Error wrapping

	"catalog_service/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// GormAccountRepository is the GORM backed AccountRepository
type GormAccountRepository struct {
	db *gorm.DB // Database handle
}

var _ AccountRepository = (*GormAccountRepository)(nil)

// NewGormAccountRepository returns an AccountRepository over db
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Create inserts user and fills in its ID
func (r *GormAccountRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Update writes the username, email and password hash of user
func (r *GormAccountRepository) Update(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Model(user).Select("Username", "Email", "Password").Updates(user).Error // Zero values are written too
	if err != nil {
		return fmt.Errorf("update account %d: %w", user.ID, err)
	}
	return nil
}

// FindByID loads an account by primary key
func (r *GormAccountRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User // Account to load
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "find account %d", id)
	}
	return &user, nil
}

// FindByEmail loads an account by its normalized email
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User // Account to load
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, "find account by email")
	}
	return &user, nil
}

// EmailTaken reports whether an account other than excludeID uses email
func (r *GormAccountRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64 // Matching rows
	q := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID) // Ignore the caller's own row
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

// Exists reports whether an account with id exists
func (r *GormAccountRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64 // Matching rows
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check account %d: %w", id, err)
	}
	return count > 0, nil
}

// notFound maps gorm's missing-record error to ErrNotFound and wraps the rest
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
