package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/pkg/enums"
)

// ImplicitSizeID is the wire identifier for products without explicit sizes.
const ImplicitSizeID = "no-size"

// ImplicitSizeName is the display label for the implicit size.
const ImplicitSizeName = "Única"

// SizeView is a purchasable variant as shown to the storefront.
type SizeView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ExtraPrice int64  `json:"extra_price"`
}

// ProductView is the storefront projection of a product. MinFinalPrice is
// the cheapest final unit price across sizes after the clamped discount.
type ProductView struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	BasePrice       int64      `json:"base_price"`
	DiscountPercent int64      `json:"discount_percent"`
	Featured        bool       `json:"featured"`
	Colors          []string   `json:"colors"`
	ImageURL        string     `json:"image_url"`
	Sizes           []SizeView `json:"sizes"`
	MinFinalPrice   int64      `json:"min_final_price"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CategoryView is an active category as shown in the storefront filter bar.
type CategoryView struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Filters captures every storefront control. Zero values disable the
// corresponding stage.
type Filters struct {
	Search       string
	Category     string
	FeaturedOnly bool
	MaxPrice     *int64
	Sort         enums.SortKey
}

// Result is a full catalog load as served to the storefront.
type Result struct {
	Products   []ProductView    `json:"products"`
	Categories []CategoryView   `json:"categories"`
	Status     enums.LoadStatus `json:"status"`
}
