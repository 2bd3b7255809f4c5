package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	"github.com/lumina-accesorios/lumina-backend/pkg/db"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubCategories struct {
	known map[string]bool
}

func (s *stubCategories) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.known[slug], nil
}

type recordingDeleter struct {
	keys []string
	err  error
}

func (r *recordingDeleter) DeleteObject(ctx context.Context, bucket, key string) error {
	r.keys = append(r.keys, key)
	return r.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func newTestService(t *testing.T) (Service, *Repository, *recordingDeleter) {
	t.Helper()

	cfg := config.DBConfig{DSN: "file::memory:?cache=shared", Driver: "sqlite"}
	client, err := db.New(context.Background(), cfg, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(&models.Product{}, &models.ProductSize{}))
	// start clean; the shared-cache DSN reuses one database across tests
	require.NoError(t, client.DB().Exec("DELETE FROM product_sizes").Error)
	require.NoError(t, client.DB().Exec("DELETE FROM products").Error)

	repo := NewRepository(client.DB())
	deleter := &recordingDeleter{}
	categories := &stubCategories{known: map[string]bool{"collares": true, "anillos": true}}

	svc, err := NewService(repo, client, categories, deleter, testLogger())
	require.NoError(t, err)
	return svc, repo, deleter
}

func TestCreateProductWithSizes(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Name:            "  Collar Luna  ",
		Description:     "colgante de plata",
		CategorySlug:    "collares",
		BasePrice:       45000,
		DiscountPercent: 10,
		Featured:        true,
		Colors:          []string{"Negro", "negro", " Rojo ", ""},
		Sizes: []SizeInput{
			{Name: "40cm", ExtraPrice: 0},
			{Name: "45cm", ExtraPrice: 5000},
			{Name: "   "},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Collar Luna", created.Name)
	require.Equal(t, []string{"Negro", "Rojo"}, []string(created.Colors))
	require.Len(t, created.Sizes, 2)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "X", CategorySlug: "inexistente", BasePrice: 1})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())

	_, err = svc.Create(ctx, CreateInput{Name: "", CategorySlug: "collares", BasePrice: 1})
	require.Error(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "X", CategorySlug: "collares", BasePrice: -5})
	require.Error(t, err)
}

func TestUpdateReplacesSizesWholesale(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Name:         "Anillo Sol",
		CategorySlug: "anillos",
		BasePrice:    30000,
		Sizes:        []SizeInput{{Name: "6"}, {Name: "7"}},
	})
	require.NoError(t, err)
	require.Len(t, created.Sizes, 2)

	newSizes := []SizeInput{{Name: "8", ExtraPrice: 2000}}
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Sizes: &newSizes})
	require.NoError(t, err)
	require.Len(t, updated.Sizes, 1)
	require.Equal(t, "8", updated.Sizes[0].Name)
	require.Equal(t, int64(2000), updated.Sizes[0].ExtraPrice)
}

func TestUpdateClearingSizesMakesImplicitSingle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Name:         "Anillo Mar",
		CategorySlug: "anillos",
		BasePrice:    20000,
		Sizes:        []SizeInput{{Name: "6"}},
	})
	require.NoError(t, err)

	empty := []SizeInput{}
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Sizes: &empty})
	require.NoError(t, err)
	require.Empty(t, updated.Sizes)
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Name:         "Collar Mar",
		CategorySlug: "collares",
		BasePrice:    10000,
	})
	require.NoError(t, err)

	discount := int64(25)
	updated, err := svc.Update(ctx, created.ID, UpdateInput{DiscountPercent: &discount})
	require.NoError(t, err)
	require.Equal(t, int64(25), updated.DiscountPercent)
	require.Equal(t, "Collar Mar", updated.Name)
	require.Equal(t, int64(10000), updated.BasePrice)
}

func TestUpdateMissingProduct(t *testing.T) {
	svc, _, _ := newTestService(t)

	name := "Nuevo"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: &name})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestDeleteRemovesRowAndImage(t *testing.T) {
	svc, repo, deleter := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Name:         "Pulsera Río",
		CategorySlug: "collares",
		BasePrice:    15000,
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetImage(ctx, created.ID, "https://cdn/x.jpg", created.ID.String()+"/1.jpg"))

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.Equal(t, []string{created.ID.String() + "/1.jpg"}, deleter.keys)

	_, err = svc.Get(ctx, created.ID)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestDeleteSurvivesImageCleanupFailure(t *testing.T) {
	svc, repo, deleter := newTestService(t)
	deleter.err = pkgerrors.New(pkgerrors.CodeDependency, "bucket down")
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Name:         "Aretes Cielo",
		CategorySlug: "collares",
		BasePrice:    8000,
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetImage(ctx, created.ID, "u", "k"))

	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestListNewestFirst(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Primero", CategorySlug: "collares", BasePrice: 1000})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Name: "Segundo", CategorySlug: "collares", BasePrice: 2000})
	require.NoError(t, err)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}
