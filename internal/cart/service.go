package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/internal/catalog"
	"github.com/lumina-accesorios/lumina-backend/internal/pricing"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"github.com/lumina-accesorios/lumina-backend/pkg/money"
	"gorm.io/gorm"
)

// DefaultColor is assumed when a product ships in a single color.
const DefaultColor = "Negro"

// Service exposes the visitor cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (Document, error)
	Add(ctx context.Context, sessionID string, input AddInput) (Document, error)
	AdjustQuantity(ctx context.Context, sessionID string, item Item, delta int) (Document, error)
	Remove(ctx context.Context, sessionID string, item Item) (Document, error)
	Clear(ctx context.Context, sessionID string) error
	Totals(ctx context.Context, sessionID string) (*Totals, error)
	Checkout(ctx context.Context, sessionID string) (*Confirmation, error)
}

// Confirmation is the simulated checkout receipt. No payment is taken
// and no order row is written; the cart is emptied once quoted.
type Confirmation struct {
	Reference string  `json:"reference"`
	Totals    *Totals `json:"totals"`
}

type productLookup interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type cartStore interface {
	Load(ctx context.Context, sessionID string) (Document, error)
	Save(ctx context.Context, sessionID string, doc Document) error
	Delete(ctx context.Context, sessionID string) error
}

type service struct {
	store    cartStore
	products productLookup
	cfg      config.CartConfig
	logg     *logger.Logger
}

// NewService constructs a cart service instance.
func NewService(store cartStore, products productLookup, cfg config.CartConfig, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if cfg.MaxQuantity <= 0 {
		return nil, fmt.Errorf("max quantity must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: store, products: products, cfg: cfg, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (Document, error) {
	return s.store.Load(ctx, sessionID)
}

// Add resolves the product, validates the requested size, and merges the
// line into the cart. Quantities saturate at the configured maximum.
func (s *service) Add(ctx context.Context, sessionID string, input AddInput) (Document, error) {
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	product, err := s.products.FindProduct(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Document{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return Document{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	sizeID, sizeName, err := resolveSize(product, input.SizeID)
	if err != nil {
		return Document{}, err
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = DefaultColor
	}

	doc, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Document{}, err
	}

	line := Item{
		ProductID: product.ID,
		SizeID:    sizeID,
		SizeName:  sizeName,
		Color:     color,
		Quantity:  input.Quantity,
	}

	merged := false
	for i := range doc.Items {
		if doc.Items[i].SameIdentity(line) {
			doc.Items[i].Quantity = s.capQuantity(doc.Items[i].Quantity + line.Quantity)
			merged = true
			break
		}
	}
	if !merged {
		line.Quantity = s.capQuantity(line.Quantity)
		doc.Items = append(doc.Items, line)
	}

	if err := s.store.Save(ctx, sessionID, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// AdjustQuantity moves a line's quantity by delta. The floor is one unit;
// removal is always an explicit action.
func (s *service) AdjustQuantity(ctx context.Context, sessionID string, item Item, delta int) (Document, error) {
	doc, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Document{}, err
	}

	found := false
	for i := range doc.Items {
		if doc.Items[i].SameIdentity(item) {
			next := doc.Items[i].Quantity + delta
			if next < 1 {
				next = 1
			}
			doc.Items[i].Quantity = s.capQuantity(next)
			found = true
			break
		}
	}
	if !found {
		return Document{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	if err := s.store.Save(ctx, sessionID, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Remove drops the identified line. Removing an absent line is a no-op.
func (s *service) Remove(ctx context.Context, sessionID string, item Item) (Document, error) {
	doc, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Document{}, err
	}

	kept := doc.Items[:0]
	for _, existing := range doc.Items {
		if !existing.SameIdentity(item) {
			kept = append(kept, existing)
		}
	}
	doc.Items = kept

	if err := s.store.Save(ctx, sessionID, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// Totals prices every line against the live catalog. Lines whose product
// disappeared price at zero instead of failing the whole summary.
func (s *service) Totals(ctx context.Context, sessionID string) (*Totals, error) {
	doc, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	totals := &Totals{Lines: make([]Line, 0, len(doc.Items))}
	for _, item := range doc.Items {
		line := Line{Item: item}

		product, err := s.products.FindProduct(ctx, item.ProductID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			line.Missing = true
		case err != nil:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "pricing cart line")
		default:
			line.Name = product.Name
			line.UnitPrice = unitPrice(product, item.SizeID)
			line.LineTotal = line.UnitPrice * int64(item.Quantity)
		}

		totals.Lines = append(totals.Lines, line)
		totals.Subtotal += line.LineTotal
		totals.Count += item.Quantity
	}

	totals.Shipping = s.shippingFee(totals.Subtotal)
	totals.Total = totals.Subtotal + totals.Shipping
	totals.SubtotalDisplay = money.FormatCOP(totals.Subtotal)
	totals.ShippingDisplay = money.FormatCOP(totals.Shipping)
	totals.TotalDisplay = money.FormatCOP(totals.Total)
	return totals, nil
}

// Checkout quotes the cart one last time, empties it, and hands back a
// reference the storefront can show. Empty carts cannot check out.
func (s *service) Checkout(ctx context.Context, sessionID string) (*Confirmation, error) {
	totals, err := s.Totals(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(totals.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart after checkout")
	}

	return &Confirmation{
		Reference: uuid.NewString(),
		Totals:    totals,
	}, nil
}

// shippingFee applies the flat-rate rule: an empty cart ships free, a
// subtotal at or above the threshold ships free, everything else pays the
// flat fee.
func (s *service) shippingFee(subtotal int64) int64 {
	if subtotal == 0 {
		return 0
	}
	if subtotal >= int64(s.cfg.FreeShippingThreshold) {
		return 0
	}
	return int64(s.cfg.FlatShippingFee)
}

func (s *service) capQuantity(q int) int {
	if q > s.cfg.MaxQuantity {
		return s.cfg.MaxQuantity
	}
	return q
}

// resolveSize validates the requested size against the product's variants.
// Products without explicit sizes accept only the implicit size.
func resolveSize(product *models.Product, sizeID string) (string, string, error) {
	sizeID = strings.TrimSpace(sizeID)

	if len(product.Sizes) == 0 {
		if sizeID == "" || sizeID == catalog.ImplicitSizeID {
			return catalog.ImplicitSizeID, catalog.ImplicitSizeName, nil
		}
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "product has no sizes")
	}

	if sizeID == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "size is required")
	}
	for _, size := range product.Sizes {
		if size.ID.String() == sizeID {
			return sizeID, size.Name, nil
		}
	}
	return "", "", pkgerrors.New(pkgerrors.CodeValidation, "unknown size for product")
}

// unitPrice computes the final unit price for a stored line. A size that no
// longer exists falls back to the base price.
func unitPrice(product *models.Product, sizeID string) int64 {
	var extra int64
	if sizeID != catalog.ImplicitSizeID {
		for _, size := range product.Sizes {
			if size.ID.String() == sizeID {
				extra = size.ExtraPrice
				break
			}
		}
	}
	return pricing.Compute(product.BasePrice, extra, product.DiscountPercent).Final
}
