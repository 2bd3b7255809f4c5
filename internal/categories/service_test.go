package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	categories    []models.Category
	productCounts map[string]int64
	createErr     error
}

func (s *stubRepo) List(ctx context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for i := range s.categories {
		if s.categories[i].Slug == slug {
			return &s.categories[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "not found")
}

func (s *stubRepo) Create(ctx context.Context, category *models.Category) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.categories = append(s.categories, *category)
	return nil
}

func (s *stubRepo) Update(ctx context.Context, category *models.Category) error {
	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			s.categories[i] = *category
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "not found")
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	return nil
}

func (s *stubRepo) CountProducts(ctx context.Context, slug string) (int64, error) {
	return s.productCounts[slug], nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func TestCreateSlugifiesName(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc, err := NewService(repo, testLogger())
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateInput{Name: "Joyería Fina", Active: true})
	require.NoError(t, err)
	require.Equal(t, "joyeria-fina", created.Slug)
	require.Equal(t, "Joyería Fina", created.Name)
}

func TestCreateExplicitSlugWins(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc, err := NewService(repo, testLogger())
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateInput{Name: "Colección 2025", Slug: "coleccion"})
	require.NoError(t, err)
	require.Equal(t, "coleccion", created.Slug)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{}, testLogger())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "   "})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestUpdateKeepsSlug(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &stubRepo{categories: []models.Category{{ID: id, Name: "Collares", Slug: "collares", Active: true}}}
	svc, err := NewService(repo, testLogger())
	require.NoError(t, err)

	name := "Collares y Cadenas"
	updated, err := svc.Update(context.Background(), id, UpdateInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Collares y Cadenas", updated.Name)
	require.Equal(t, "collares", updated.Slug)
}

func TestDeleteBlockedWhileProductsRemain(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &stubRepo{
		categories:    []models.Category{{ID: id, Name: "Anillos", Slug: "anillos"}},
		productCounts: map[string]int64{"anillos": 3},
	}
	svc, err := NewService(repo, testLogger())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), id)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeConflict, coded.Code())
	require.Len(t, repo.categories, 1)
}

func TestDeleteEmptyCategory(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &stubRepo{categories: []models.Category{{ID: id, Name: "Vacía", Slug: "vacia"}}}
	svc, err := NewService(repo, testLogger())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))
	require.Empty(t, repo.categories)
}
