package catalog

import (
	"sort"
	"strings"

	"github.com/lumina-accesorios/lumina-backend/pkg/enums"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newNameCollator builds a Spanish-aware collator so accented names order the
// way the storefront shows them. Collators are not safe for concurrent use.
func newNameCollator() *collate.Collator {
	return collate.New(language.Spanish)
}

// ApplyFilters runs the storefront pipeline over an in-memory product list:
// search, category, featured, price cap, then sort. The input slice is never
// mutated and the projection is always a subset of it.
func ApplyFilters(products []ProductView, f Filters) []ProductView {
	out := make([]ProductView, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.FeaturedOnly && !p.Featured {
			continue
		}
		if f.MaxPrice != nil && p.MinFinalPrice > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	// an unset key means the default storefront ordering
	sortProducts(out, enums.ParseSortKey(string(f.Sort)))
	return out
}

// matchesSearch reports whether the term appears in any searchable field.
func matchesSearch(p ProductView, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Category), term)
}

func sortProducts(products []ProductView, key enums.SortKey) {
	switch key {
	case enums.SortFeatured:
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].Featured != products[j].Featured {
				return products[i].Featured
			}
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case enums.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].MinFinalPrice < products[j].MinFinalPrice
		})
	case enums.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].MinFinalPrice > products[j].MinFinalPrice
		})
	case enums.SortNameAsc:
		col := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return col.CompareString(products[i].Name, products[j].Name) < 0
		})
	case enums.SortNameDesc:
		col := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return col.CompareString(products[i].Name, products[j].Name) > 0
		})
	default:
		// unknown keys leave the current order untouched
	}
}
