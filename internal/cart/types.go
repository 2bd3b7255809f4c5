package cart

import (
	"time"

	"github.com/google/uuid"
)

// Item is one cart line. Identity is the (product, size, color) triple;
// adding the same triple again merges quantities.
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	SizeID    string    `json:"size_id"`
	SizeName  string    `json:"size_name"`
	Color     string    `json:"color"`
	Quantity  int       `json:"quantity"`
}

// SameIdentity reports whether two lines collapse into one.
func (i Item) SameIdentity(other Item) bool {
	return i.ProductID == other.ProductID && i.SizeID == other.SizeID && i.Color == other.Color
}

// Document is the whole cart as persisted in its Redis slot.
type Document struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Count returns the total unit count across lines.
func (d Document) Count() int {
	total := 0
	for _, item := range d.Items {
		total += item.Quantity
	}
	return total
}

// AddInput is the payload to add a line to the cart.
type AddInput struct {
	ProductID uuid.UUID
	SizeID    string
	Color     string
	Quantity  int
}

// Line is a priced cart line as returned by Totals.
type Line struct {
	Item      Item   `json:"item"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
	Missing   bool   `json:"missing"`
}

// Totals is the priced cart summary. Amounts are integer COP; the
// display fields carry them pre-formatted for the storefront.
type Totals struct {
	Lines           []Line `json:"lines"`
	Subtotal        int64  `json:"subtotal"`
	Shipping        int64  `json:"shipping"`
	Total           int64  `json:"total"`
	Count           int    `json:"count"`
	SubtotalDisplay string `json:"subtotal_display"`
	ShippingDisplay string `json:"shipping_display"`
	TotalDisplay    string `json:"total_display"`
}
