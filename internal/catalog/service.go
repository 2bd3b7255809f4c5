package catalog

import (
	"context"
	"fmt"

	"github.com/lumina-accesorios/lumina-backend/internal/pricing"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	"github.com/lumina-accesorios/lumina-backend/pkg/enums"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
)

// Service exposes the storefront catalog operations.
type Service interface {
	Load(ctx context.Context, filters Filters) (*Result, error)
}

type catalogRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListActiveCategories(ctx context.Context) ([]models.Category, error)
}

type service struct {
	repo catalogRepository
	logg *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo catalogRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Load fetches products and categories, applies the storefront pipeline, and
// reports a failed status instead of surfacing partial data as empty.
func (s *service) Load(ctx context.Context, filters Filters) (*Result, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logg.Error(ctx, "catalog product load failed", err)
		return &Result{
			Products:   []ProductView{},
			Categories: []CategoryView{},
			Status:     enums.LoadStatusFailed,
		}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading products")
	}

	// a category fetch failure degrades to an empty filter list; the
	// status field is how callers tell that apart from "none configured"
	status := enums.LoadStatusOK
	categories, err := s.repo.ListActiveCategories(ctx)
	if err != nil {
		s.logg.Error(ctx, "catalog category load failed", err)
		categories = nil
		status = enums.LoadStatusFailed
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProjectProduct(p))
	}

	categoryViews := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		categoryViews = append(categoryViews, CategoryView{Slug: c.Slug, Name: c.Name})
	}

	return &Result{
		Products:   ApplyFilters(views, filters),
		Categories: categoryViews,
		Status:     status,
	}, nil
}

// ProjectProduct builds the storefront view of a product row. Products with
// no explicit sizes get the implicit single size at no surcharge.
func ProjectProduct(p models.Product) ProductView {
	sizes := make([]SizeView, 0, len(p.Sizes))
	extras := make([]int64, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, SizeView{
			ID:         s.ID.String(),
			Name:       s.Name,
			ExtraPrice: s.ExtraPrice,
		})
		extras = append(extras, s.ExtraPrice)
	}
	if len(sizes) == 0 {
		sizes = append(sizes, SizeView{ID: ImplicitSizeID, Name: ImplicitSizeName, ExtraPrice: 0})
	}

	colors := append([]string(nil), p.Colors...)

	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.CategorySlug,
		BasePrice:       p.BasePrice,
		DiscountPercent: pricing.ClampDiscount(p.DiscountPercent),
		Featured:        p.Featured,
		Colors:          colors,
		ImageURL:        p.ImageURL,
		Sizes:           sizes,
		MinFinalPrice:   pricing.MinFinal(p.BasePrice, p.DiscountPercent, extras),
		CreatedAt:       p.CreatedAt,
	}
}
