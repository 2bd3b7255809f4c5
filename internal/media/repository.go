package media

import (
	"context"

	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository records uploaded objects for later reconciliation.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the media row.
func (r *Repository) Create(ctx context.Context, row *models.Media) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// DeleteByObjectKey removes the record for a replaced object.
func (r *Repository) DeleteByObjectKey(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&models.Media{}, "object_key = ?", key).Error
}
