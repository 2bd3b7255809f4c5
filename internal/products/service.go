package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/internal/catalog"
	"github.com/lumina-accesorios/lumina-backend/pkg/db"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Service exposes admin product management.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	Get(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
}

// SizeInput defines one size row for create/update.
type SizeInput struct {
	Name       string
	ExtraPrice int64
	SortOrder  int
}

// CreateInput holds the validated payload to create a product.
type CreateInput struct {
	Name            string
	Description     string
	CategorySlug    string
	BasePrice       int64
	DiscountPercent int64
	Featured        bool
	Colors          []string
	Sizes           []SizeInput
}

// UpdateInput holds optional mutation values. Nil fields are untouched;
// a non-nil Sizes replaces the size list wholesale.
type UpdateInput struct {
	Name            *string
	Description     *string
	CategorySlug    *string
	BasePrice       *int64
	DiscountPercent *int64
	Featured        *bool
	Colors          *[]string
	Sizes           *[]SizeInput
}

type categoryChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, bucket, key string) error
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	categories categoryChecker
	storage    objectDeleter
	logg       *logger.Logger
}

// NewService constructs an admin product service instance.
func NewService(repo *Repository, dbClient *db.Client, categories categoryChecker, storage objectDeleter, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category checker required")
	}
	if storage == nil {
		return nil, fmt.Errorf("object storage required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:       repo,
		dbClient:   dbClient,
		categories: categories,
		storage:    storage,
		logg:       logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	if err := s.validateCategory(ctx, input.CategorySlug); err != nil {
		return nil, err
	}
	if input.BasePrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}

	product := &models.Product{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(input.Name),
		Description:     strings.TrimSpace(input.Description),
		CategorySlug:    input.CategorySlug,
		BasePrice:       input.BasePrice,
		DiscountPercent: input.DiscountPercent,
		Featured:        input.Featured,
		Colors:          dedupeColors(input.Colors),
	}
	if product.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	sizes := buildSizes(product.ID, input.Sizes)

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Create(ctx, product); err != nil {
			return err
		}
		return txRepo.ReplaceSizes(ctx, product.ID, sizes)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID), "product created")
	return s.repo.FindByID(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateInput) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.CategorySlug != nil {
		if err := s.validateCategory(ctx, *input.CategorySlug); err != nil {
			return nil, err
		}
		product.CategorySlug = *input.CategorySlug
	}
	if input.BasePrice != nil {
		if *input.BasePrice < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
		}
		product.BasePrice = *input.BasePrice
	}
	if input.DiscountPercent != nil {
		product.DiscountPercent = *input.DiscountPercent
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.Colors != nil {
		product.Colors = dedupeColors(*input.Colors)
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Update(ctx, product); err != nil {
			return err
		}
		if input.Sizes != nil {
			return txRepo.ReplaceSizes(ctx, product.ID, buildSizes(product.ID, *input.Sizes))
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}

	return s.repo.FindByID(ctx, productID)
}

// Delete removes the product row and then best-effort deletes its stored
// image. A failed object delete is reported but never resurrects the row.
func (s *service) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}

	var cleanup error
	if product.ImagePath != "" {
		if err := s.storage.DeleteObject(ctx, "", product.ImagePath); err != nil {
			cleanup = multierr.Append(cleanup, err)
		}
	}
	if cleanup != nil {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "product image cleanup failed")
	}

	return nil
}

func (s *service) Get(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return products, nil
}

func (s *service) validateCategory(ctx context.Context, slug string) error {
	if slug == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	exists, err := s.categories.SlugExists(ctx, slug)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking category")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown category %q", slug))
	}
	return nil
}

// buildSizes normalizes the size list. Blank names are dropped; an empty
// result means the product sells in the implicit single size.
func buildSizes(productID uuid.UUID, inputs []SizeInput) []models.ProductSize {
	sizes := make([]models.ProductSize, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" || strings.EqualFold(name, catalog.ImplicitSizeName) {
			continue
		}
		extra := in.ExtraPrice
		if extra < 0 {
			extra = 0
		}
		order := in.SortOrder
		if order == 0 {
			order = i
		}
		sizes = append(sizes, models.ProductSize{
			ID:         uuid.New(),
			ProductID:  productID,
			Name:       name,
			ExtraPrice: extra,
			SortOrder:  order,
		})
	}
	return sizes
}

// dedupeColors trims, drops empties, and keeps first-seen order.
func dedupeColors(colors []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
