package repository

import (
	"context"

	"feedsvc/internal/models"

	"gorm.io/gorm"
)

// InterestRepository defines read access to the store-managed interest catalog.
type InterestRepository interface {
	List(ctx context.Context) ([]models.Interest, error)
}

type interestRepository struct {
	db *gorm.DB
}

// NewInterestRepository creates a new interest repository
func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) List(ctx context.Context) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.WithContext(ctx).
		Order("interest_name").
		Find(&interests).Error
	return interests, err
}
