package controllers

import (
	"net/http"
	"strings"

	"github.com/lumina-accesorios/lumina-backend/api/responses"
	"github.com/lumina-accesorios/lumina-backend/api/validators"
	catalogsvc "github.com/lumina-accesorios/lumina-backend/internal/catalog"
	"github.com/lumina-accesorios/lumina-backend/pkg/enums"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
)

const maxSearchLength = 120

// Catalog serves the storefront product listing with filters and sorting.
func Catalog(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()

		featured, err := validators.ParseQueryBool(r, "featured", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := catalogsvc.Filters{
			Search:       validators.SanitizeString(query.Get("q"), maxSearchLength),
			Category:     strings.TrimSpace(query.Get("category")),
			FeaturedOnly: featured,
			Sort:         enums.ParseSortKey(strings.TrimSpace(query.Get("sort"))),
		}

		if query.Get("max_price") != "" {
			maxPrice, err := validators.ParseQueryInt(r, "max_price", 0, 0, 1<<31)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			capped := int64(maxPrice)
			filters.MaxPrice = &capped
		}

		result, err := svc.Load(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
