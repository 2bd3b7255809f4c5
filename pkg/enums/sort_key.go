package enums

// SortKey selects the catalog ordering. Unknown values leave the input
// order untouched, so parsing is intentionally lenient.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
	SortNameDesc  SortKey = "name_desc"
)

var validSortKeys = []SortKey{
	SortFeatured,
	SortPriceAsc,
	SortPriceDesc,
	SortNameAsc,
	SortNameDesc,
}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SortKey.
func (k SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey, defaulting to featured
// ordering for empty input and passing unknown values through unchanged.
func ParseSortKey(value string) SortKey {
	if value == "" {
		return SortFeatured
	}
	return SortKey(value)
}
