package products

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository owns product persistence for the admin surface.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product with its sizes.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, name ASC")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns every product with sizes, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := r.db.WithContext(ctx).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, name ASC")
		}).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts the product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Sizes").Create(product).Error
}

// Update saves the mutated product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Sizes").Save(product).Error
}

// Delete removes the product. Sizes cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// ReplaceSizes swaps the product's size list wholesale.
func (r *Repository) ReplaceSizes(ctx context.Context, productID uuid.UUID, sizes []models.ProductSize) error {
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductSize{}).Error; err != nil {
		return err
	}
	if len(sizes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&sizes).Error
}

// SetImage updates only the image columns.
func (r *Repository) SetImage(ctx context.Context, productID uuid.UUID, imageURL, imagePath string) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{"image_url": imageURL, "image_path": imagePath}).Error
}
