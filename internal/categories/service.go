package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	dbpkg "github.com/lumina-accesorios/lumina-backend/pkg/db"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"github.com/lumina-accesorios/lumina-backend/pkg/slug"
)

// Service exposes admin category management.
type Service interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, input CreateInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateInput holds the payload to create a category. The slug derives from
// the name unless provided explicitly.
type CreateInput struct {
	Name      string
	Slug      string
	Active    bool
	SortOrder int
}

// UpdateInput holds optional mutation values.
type UpdateInput struct {
	Name      *string
	Active    *bool
	SortOrder *int
}

type categoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountProducts(ctx context.Context, slug string) (int64, error)
}

type service struct {
	repo categoryRepository
	logg *logger.Logger
}

// NewService constructs a category service instance.
func NewService(repo categoryRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing categories")
	}
	return categories, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	categorySlug := strings.TrimSpace(input.Slug)
	if categorySlug == "" {
		categorySlug = slug.Make(name)
	}
	if categorySlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name does not produce a valid slug")
	}

	category := &models.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      categorySlug,
		Active:    input.Active,
		SortOrder: input.SortOrder,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("category %q already exists", categorySlug))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating category")
	}

	return category, nil
}

// Update never changes the slug; products reference categories by slug and
// renames must not orphan them.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading categories")
	}

	var category *models.Category
	for i := range categories {
		if categories[i].ID == id {
			category = &categories[i]
			break
		}
	}
	if category == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		category.Name = name
	}
	if input.Active != nil {
		category.Active = *input.Active
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating category")
	}
	return category, nil
}

// Delete refuses to remove a category that still has products.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading categories")
	}

	var category *models.Category
	for i := range categories {
		if categories[i].ID == id {
			category = &categories[i]
			break
		}
	}
	if category == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	count, err := s.repo.CountProducts(ctx, category.Slug)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("category %q still has %d products", category.Slug, count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting category")
	}
	return nil
}
