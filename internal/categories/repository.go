package categories

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository owns category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every category ordered for the admin screen.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindBySlug loads one category.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// SlugExists reports whether an active category carries the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("slug = ? AND active = ?", slug, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update saves the mutated category row.
func (r *Repository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes the category row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

// CountProducts reports how many products still reference the slug.
func (r *Repository) CountProducts(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
