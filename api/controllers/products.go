package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lumina-accesorios/lumina-backend/api/responses"
	"github.com/lumina-accesorios/lumina-backend/api/validators"
	productsvc "github.com/lumina-accesorios/lumina-backend/internal/products"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
)

type sizeRequest struct {
	Name       string `json:"name" validate:"required"`
	ExtraPrice int64  `json:"extra_price" validate:"omitempty,min=0"`
	SortOrder  int    `json:"sort_order,omitempty"`
}

type createProductRequest struct {
	Name            string        `json:"name" validate:"required"`
	Description     string        `json:"description,omitempty"`
	Category        string        `json:"category" validate:"required"`
	BasePrice       int64         `json:"base_price" validate:"min=0"`
	DiscountPercent int64         `json:"discount_percent,omitempty" validate:"omitempty,min=0,max=100"`
	Featured        bool          `json:"featured,omitempty"`
	Colors          []string      `json:"colors,omitempty"`
	Sizes           []sizeRequest `json:"sizes,omitempty" validate:"omitempty,dive"`
}

type updateProductRequest struct {
	Name            *string        `json:"name,omitempty"`
	Description     *string        `json:"description,omitempty"`
	Category        *string        `json:"category,omitempty"`
	BasePrice       *int64         `json:"base_price,omitempty" validate:"omitempty,min=0"`
	DiscountPercent *int64         `json:"discount_percent,omitempty" validate:"omitempty,min=0,max=100"`
	Featured        *bool          `json:"featured,omitempty"`
	Colors          *[]string      `json:"colors,omitempty"`
	Sizes           *[]sizeRequest `json:"sizes,omitempty" validate:"omitempty,dive"`
}

func toSizeInputs(sizes []sizeRequest) []productsvc.SizeInput {
	out := make([]productsvc.SizeInput, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, productsvc.SizeInput{
			Name:       s.Name,
			ExtraPrice: s.ExtraPrice,
			SortOrder:  s.SortOrder,
		})
	}
	return out
}

func productIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}

func AdminListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func AdminGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), productsvc.CreateInput{
			Name:            payload.Name,
			Description:     payload.Description,
			CategorySlug:    payload.Category,
			BasePrice:       payload.BasePrice,
			DiscountPercent: payload.DiscountPercent,
			Featured:        payload.Featured,
			Colors:          payload.Colors,
			Sizes:           toSizeInputs(payload.Sizes),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateInput{
			Name:            payload.Name,
			Description:     payload.Description,
			CategorySlug:    payload.Category,
			BasePrice:       payload.BasePrice,
			DiscountPercent: payload.DiscountPercent,
			Featured:        payload.Featured,
			Colors:          payload.Colors,
		}
		if payload.Sizes != nil {
			sizes := toSizeInputs(*payload.Sizes)
			input.Sizes = &sizes
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
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
