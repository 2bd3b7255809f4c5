package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lumina-accesorios/lumina-backend/api/responses"
	"github.com/lumina-accesorios/lumina-backend/api/validators"
	categorysvc "github.com/lumina-accesorios/lumina-backend/internal/categories"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	Slug      string `json:"slug,omitempty"`
	Active    *bool  `json:"active,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`
}

type updateCategoryRequest struct {
	Name      *string `json:"name,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

func categoryIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
	}
	return id, nil
}

func AdminListCategories(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func AdminCreateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		if payload.Active != nil {
			active = *payload.Active
		}

		category, err := svc.Create(r.Context(), categorysvc.CreateInput{
			Name:      payload.Name,
			Slug:      payload.Slug,
			Active:    active,
			SortOrder: payload.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func AdminUpdateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := categoryIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Update(r.Context(), id, categorysvc.UpdateInput{
			Name:      payload.Name,
			Active:    payload.Active,
			SortOrder: payload.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

func AdminDeleteCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := categoryIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
