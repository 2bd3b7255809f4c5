package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/internal/catalog"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memStore struct {
	docs map[string]Document
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]Document{}}
}

func (m *memStore) Load(ctx context.Context, sessionID string) (Document, error) {
	doc, ok := m.docs[sessionID]
	if !ok {
		return Document{Items: []Item{}}, nil
	}
	return doc, nil
}

func (m *memStore) Save(ctx context.Context, sessionID string, doc Document) error {
	m.docs[sessionID] = doc
	return nil
}

func (m *memStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.docs, sessionID)
	return nil
}

type stubProducts struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProducts) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func testCartConfig() config.CartConfig {
	return config.CartConfig{
		FreeShippingThreshold: 150000,
		FlatShippingFee:       12000,
		MaxQuantity:           99,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func newTestService(t *testing.T, products ...*models.Product) (Service, *memStore) {
	t.Helper()
	lookup := &stubProducts{products: map[uuid.UUID]*models.Product{}}
	for _, p := range products {
		lookup.products[p.ID] = p
	}
	store := newMemStore()
	svc, err := NewService(store, lookup, testCartConfig(), testLogger())
	require.NoError(t, err)
	return svc, store
}

func sizedProduct(base int64, discount int64, sizes ...models.ProductSize) *models.Product {
	return &models.Product{
		ID:              uuid.New(),
		Name:            "Collar Prueba",
		BasePrice:       base,
		DiscountPercent: discount,
		Sizes:           sizes,
	}
}

func TestAddMergesIdenticalLines(t *testing.T) {
	t.Parallel()

	product := sizedProduct(10000, 0)
	svc, _ := newTestService(t, product)
	ctx := context.Background()

	doc, err := svc.Add(ctx, "v1", AddInput{ProductID: product.ID, Color: "Rojo"})
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	require.Equal(t, 1, doc.Items[0].Quantity)

	doc, err = svc.Add(ctx, "v1", AddInput{ProductID: product.ID, Color: "Rojo"})
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	require.Equal(t, 2, doc.Items[0].Quantity)
}

func TestAddDistinctIdentityMakesNewLine(t *testing.T) {
	t.Parallel()

	product := sizedProduct(10000, 0)
	svc, _ := newTestService(t, product)
	ctx := context.Background()

	_, err := svc.Add(ctx, "v1", AddInput{ProductID: product.ID, Color: "Rojo"})
	require.NoError(t, err)
	doc, err := svc.Add(ctx, "v1", AddInput{ProductID: product.ID, Color: "Azul"})
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
}

func TestAddDefaultsColorAndImplicitSize(t *testing.T) {
	t.Parallel()

	product := sizedProduct(10000, 0)
	svc, _ := newTestService(t, product)

	doc, err := svc.Add(context.Background(), "v1", AddInput{ProductID: product.ID})
	require.NoError(t, err)
	require.Equal(t, DefaultColor, doc.Items[0].Color)
	require.Equal(t, catalog.ImplicitSizeID, doc.Items[0].SizeID)
	require.Equal(t, catalog.ImplicitSizeName, doc.Items[0].SizeName)
}

func TestAddRejectsUnknownSize(t *testing.T) {
	t.Parallel()

	size := models.ProductSize{ID: uuid.New(), Name: "M", ExtraPrice: 2000}
	product := sizedProduct(10000, 0, size)
	svc, _ := newTestService(t, product)

	_, err := svc.Add(context.Background(), "v1", AddInput{ProductID: product.ID, SizeID: uuid.NewString()})
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestAddCapsQuantity(t *testing.T) {
	t.Parallel()

	product := sizedProduct(10000, 0)
	svc, _ := newTestService(t, product)
	ctx := context.Background()

	doc, err := svc.Add(ctx, "v1", AddInput{ProductID: product.ID, Quantity: 98})
	require.NoError(t, err)
	require.Equal(t, 98, doc.Items[0].Quantity)

	doc, err = svc.Add(ctx, "v1", AddInput{ProductID: product.ID, Quantity: 50})
	require.NoError(t, err)
	require.Equal(t, 99, doc.Items[0].Quantity)
}

func TestAdjustQuantityFloorsAtOne(t *testing.T) {
	t.Parallel()

	product := sizedProduct(10000, 0)
	svc, _ := newTestService(t, product)
	ctx := context.Background()

	doc, err := svc.Add(ctx, "v1", AddInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	doc, err = svc.AdjustQuantity(ctx, "v1", doc.Items[0], -100)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Items[0].Quantity)
}

func TestAdjustQuantityUnknownLine(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.AdjustQuantity(context.Background(), "v1", Item{ProductID: uuid.New(), SizeID: "no-size", Color: "Negro"}, 1)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestRemoveAndClear(t *testing.T) {
	t.Parallel()

	product := sizedProduct(10000, 0)
	svc, store := newTestService(t, product)
	ctx := context.Background()

	doc, err := svc.Add(ctx, "v1", AddInput{ProductID: product.ID})
	require.NoError(t, err)

	doc, err = svc.Remove(ctx, "v1", doc.Items[0])
	require.NoError(t, err)
	require.Empty(t, doc.Items)

	// removing again is a no-op
	doc, err = svc.Remove(ctx, "v1", Item{ProductID: product.ID, SizeID: "no-size", Color: "Negro"})
	require.NoError(t, err)
	require.Empty(t, doc.Items)

	require.NoError(t, svc.Clear(ctx, "v1"))
	_, ok := store.docs["v1"]
	require.False(t, ok)
}

func TestTotalsShippingBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		base     int64
		quantity int
		shipping int64
	}{
		{"just below threshold pays flat fee", 149999, 1, 12000},
		{"at threshold ships free", 150000, 1, 0},
		{"above threshold ships free", 80000, 2, 0},
		{"small order pays flat fee", 20000, 1, 12000},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			product := sizedProduct(tc.base, 0)
			svc, _ := newTestService(t, product)
			ctx := context.Background()

			_, err := svc.Add(ctx, "v1", AddInput{ProductID: product.ID, Quantity: tc.quantity})
			require.NoError(t, err)

			totals, err := svc.Totals(ctx, "v1")
			require.NoError(t, err)
			require.Equal(t, tc.shipping, totals.Shipping)
			require.Equal(t, totals.Subtotal+totals.Shipping, totals.Total)
		})
	}
}

func TestTotalsEmptyCartShipsFree(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	totals, err := svc.Totals(context.Background(), "v1")
	require.NoError(t, err)
	require.Zero(t, totals.Subtotal)
	require.Zero(t, totals.Shipping)
	require.Zero(t, totals.Total)
	require.Zero(t, totals.Count)
}

func TestTotalsMissingProductPricesAtZero(t *testing.T) {
	t.Parallel()

	product := sizedProduct(10000, 0)
	svc, store := newTestService(t, product)
	ctx := context.Background()

	_, err := svc.Add(ctx, "v1", AddInput{ProductID: product.ID})
	require.NoError(t, err)

	// simulate the product disappearing after it was added
	doc := store.docs["v1"]
	doc.Items = append(doc.Items, Item{ProductID: uuid.New(), SizeID: "no-size", Color: "Negro", Quantity: 2})
	store.docs["v1"] = doc

	totals, err := svc.Totals(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, totals.Lines, 2)
	require.True(t, totals.Lines[1].Missing)
	require.Zero(t, totals.Lines[1].LineTotal)
	require.Equal(t, int64(10000), totals.Subtotal)
	require.Equal(t, 3, totals.Count)
}

func TestTotalsEndToEnd(t *testing.T) {
	t.Parallel()

	// 20000 base, size M +0, 10% off -> unit 18000; below threshold so
	// shipping 12000 and total 30000
	size := models.ProductSize{ID: uuid.New(), Name: "M", ExtraPrice: 0}
	product := sizedProduct(20000, 10, size)
	svc, _ := newTestService(t, product)
	ctx := context.Background()

	_, err := svc.Add(ctx, "v1", AddInput{
		ProductID: product.ID,
		SizeID:    size.ID.String(),
		Color:     "Rojo",
	})
	require.NoError(t, err)

	totals, err := svc.Totals(ctx, "v1")
	require.NoError(t, err)
	require.Equal(t, int64(18000), totals.Lines[0].UnitPrice)
	require.Equal(t, int64(18000), totals.Subtotal)
	require.Equal(t, int64(12000), totals.Shipping)
	require.Equal(t, int64(30000), totals.Total)
	require.Equal(t, "$30.000", totals.TotalDisplay)
	require.Equal(t, "M", totals.Lines[0].Item.SizeName)
	require.Equal(t, "Rojo", totals.Lines[0].Item.Color)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Checkout(context.Background(), "v1")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestCheckoutQuotesAndClears(t *testing.T) {
	t.Parallel()

	product := sizedProduct(20000, 0)
	svc, store := newTestService(t, product)
	ctx := context.Background()

	_, err := svc.Add(ctx, "v1", AddInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	conf, err := svc.Checkout(ctx, "v1")
	require.NoError(t, err)
	require.NotEmpty(t, conf.Reference)
	require.Equal(t, int64(40000), conf.Totals.Subtotal)
	require.Equal(t, int64(52000), conf.Totals.Total)

	_, ok := store.docs["v1"]
	require.False(t, ok)

	doc, err := svc.Get(ctx, "v1")
	require.NoError(t, err)
	require.Empty(t, doc.Items)
}
