package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository resolves products for cart pricing.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindProduct loads one product with its sizes.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Sizes").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
