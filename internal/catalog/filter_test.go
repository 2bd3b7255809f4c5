package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/pkg/enums"
	"github.com/stretchr/testify/require"
)

func view(name, category string, featured bool, minFinal int64, created time.Time) ProductView {
	return ProductView{
		ID:            uuid.New(),
		Name:          name,
		Description:   "descripción de " + name,
		Category:      category,
		Featured:      featured,
		MinFinalPrice: minFinal,
		CreatedAt:     created,
	}
}

func sampleProducts() []ProductView {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []ProductView{
		view("Collar Luna", "collares", true, 45000, base.Add(3*time.Hour)),
		view("Anillo Sol", "anillos", false, 30000, base.Add(2*time.Hour)),
		view("Aretes Mar", "aretes", true, 25000, base.Add(1*time.Hour)),
		view("Pulsera Río", "pulseras", false, 60000, base),
	}
}

func names(products []ProductView) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestApplyFiltersProjectionNeverGrows(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	filters := []Filters{
		{},
		{Search: "collar"},
		{Category: "anillos"},
		{FeaturedOnly: true},
		{MaxPrice: int64Ptr(30000)},
		{Search: "zzz-no-match"},
	}
	for _, f := range filters {
		got := ApplyFilters(products, f)
		require.LessOrEqual(t, len(got), len(products))
	}
}

func TestApplyFiltersZeroConfigDefaultsToFeaturedOrder(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	got := ApplyFilters(products, Filters{})
	require.Equal(t, []string{"Collar Luna", "Aretes Mar", "Anillo Sol", "Pulsera Río"}, names(got))
}

func TestApplyFiltersSearchMatchesAnyField(t *testing.T) {
	t.Parallel()

	products := sampleProducts()

	// name match, case-insensitive
	require.Equal(t, []string{"Collar Luna"}, names(ApplyFilters(products, Filters{Search: "LUNA"})))

	// description match
	require.Equal(t, []string{"Anillo Sol"}, names(ApplyFilters(products, Filters{Search: "descripción de anillo"})))

	// category match
	require.Equal(t, []string{"Aretes Mar"}, names(ApplyFilters(products, Filters{Search: "aretes"})))
}

func TestApplyFiltersCategoryAndFeatured(t *testing.T) {
	t.Parallel()

	products := sampleProducts()

	got := ApplyFilters(products, Filters{Category: "pulseras"})
	require.Equal(t, []string{"Pulsera Río"}, names(got))

	got = ApplyFilters(products, Filters{FeaturedOnly: true})
	require.Equal(t, []string{"Collar Luna", "Aretes Mar"}, names(got))
}

func TestApplyFiltersPriceCapUsesMinFinal(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	// default ordering puts the featured survivor first
	got := ApplyFilters(products, Filters{MaxPrice: int64Ptr(30000)})
	require.Equal(t, []string{"Aretes Mar", "Anillo Sol"}, names(got))

	// cap below everything yields an empty, valid projection
	got = ApplyFilters(products, Filters{MaxPrice: int64Ptr(1)})
	require.Empty(t, got)
	require.NotNil(t, got)
}

func TestApplyFiltersFeaturedSortTiebreaksByNewest(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	got := ApplyFilters(products, Filters{Sort: enums.SortFeatured})
	require.Equal(t, []string{"Collar Luna", "Aretes Mar", "Anillo Sol", "Pulsera Río"}, names(got))
}

func TestApplyFiltersPriceSortsAreMirrored(t *testing.T) {
	t.Parallel()

	products := sampleProducts() // all prices distinct
	asc := ApplyFilters(products, Filters{Sort: enums.SortPriceAsc})
	desc := ApplyFilters(products, Filters{Sort: enums.SortPriceDesc})

	require.Len(t, asc, len(desc))
	for i := range asc {
		require.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestApplyFiltersNameSortUsesSpanishCollation(t *testing.T) {
	t.Parallel()

	base := time.Now()
	products := []ProductView{
		view("Ámbar", "piedras", false, 1000, base),
		view("Zafiro", "piedras", false, 1000, base),
		view("Coral", "piedras", false, 1000, base),
	}

	got := ApplyFilters(products, Filters{Sort: enums.SortNameAsc})
	// accent-aware: Ámbar sorts with A, not after Z
	require.Equal(t, []string{"Ámbar", "Coral", "Zafiro"}, names(got))

	got = ApplyFilters(products, Filters{Sort: enums.SortNameDesc})
	require.Equal(t, []string{"Zafiro", "Coral", "Ámbar"}, names(got))
}

func TestApplyFiltersUnknownSortKeepsOrder(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	got := ApplyFilters(products, Filters{Sort: enums.SortKey("relevancia")})
	require.Equal(t, names(products), names(got))
}

func TestApplyFiltersStableOnPriceTies(t *testing.T) {
	t.Parallel()

	base := time.Now()
	products := []ProductView{
		view("Primero", "a", false, 5000, base),
		view("Segundo", "b", false, 5000, base),
		view("Tercero", "c", false, 5000, base),
	}

	got := ApplyFilters(products, Filters{Sort: enums.SortPriceAsc})
	require.Equal(t, []string{"Primero", "Segundo", "Tercero"}, names(got))
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	original := names(products)

	_ = ApplyFilters(products, Filters{Sort: enums.SortPriceDesc, FeaturedOnly: true})
	require.Equal(t, original, names(products))
}

func int64Ptr(v int64) *int64 { return &v }
