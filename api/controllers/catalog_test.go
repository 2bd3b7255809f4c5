package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogsvc "github.com/lumina-accesorios/lumina-backend/internal/catalog"
	"github.com/lumina-accesorios/lumina-backend/pkg/enums"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
)

type stubCatalogService struct {
	result  *catalogsvc.Result
	err     error
	filters catalogsvc.Filters
}

func (s *stubCatalogService) Load(ctx context.Context, filters catalogsvc.Filters) (*catalogsvc.Result, error) {
	s.filters = filters
	return s.result, s.err
}

func TestCatalogParsesFilters(t *testing.T) {
	svc := &stubCatalogService{result: &catalogsvc.Result{
		Products:   []catalogsvc.ProductView{},
		Categories: []catalogsvc.CategoryView{},
		Status:     enums.LoadStatusOK,
	}}
	handler := Catalog(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?q=%20luna%20&category=anillos&featured=true&max_price=50000&sort=price_asc", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	if svc.filters.Search != "luna" {
		t.Fatalf("expected trimmed search got %q", svc.filters.Search)
	}
	if svc.filters.Category != "anillos" || !svc.filters.FeaturedOnly {
		t.Fatalf("unexpected filters %+v", svc.filters)
	}
	if svc.filters.MaxPrice == nil || *svc.filters.MaxPrice != 50000 {
		t.Fatalf("expected max price 50000 got %v", svc.filters.MaxPrice)
	}
	if svc.filters.Sort != enums.SortPriceAsc {
		t.Fatalf("expected price_asc got %s", svc.filters.Sort)
	}
}

func TestCatalogDefaultsSortToFeatured(t *testing.T) {
	svc := &stubCatalogService{result: &catalogsvc.Result{}}
	handler := Catalog(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.filters.Sort != enums.SortFeatured {
		t.Fatalf("expected featured default got %s", svc.filters.Sort)
	}
	if svc.filters.MaxPrice != nil {
		t.Fatalf("expected nil max price got %v", svc.filters.MaxPrice)
	}
}

func TestCatalogRejectsNonNumericMaxPrice(t *testing.T) {
	handler := Catalog(&stubCatalogService{result: &catalogsvc.Result{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?max_price=cheap", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCatalogSurfacesDependencyFailure(t *testing.T) {
	svc := &stubCatalogService{
		result: nil,
		err:    pkgerrors.New(pkgerrors.CodeDependency, "catalog unavailable"),
	}
	handler := Catalog(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeDependency) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}
