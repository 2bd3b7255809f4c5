package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lumina-accesorios/lumina-backend/api/middleware"
	"github.com/lumina-accesorios/lumina-backend/api/responses"
	"github.com/lumina-accesorios/lumina-backend/api/validators"
	cartsvc "github.com/lumina-accesorios/lumina-backend/internal/cart"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
)

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	SizeID    string `json:"size_id,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

type cartLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	SizeID    string `json:"size_id,omitempty"`
	Color     string `json:"color,omitempty"`
}

type adjustQuantityRequest struct {
	cartLineRequest
	Delta int `json:"delta" validate:"required"`
}

func cartSession(r *http.Request) (string, error) {
	sessionID := middleware.CartSessionFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return sessionID, nil
}

func (req cartLineRequest) toItem() (cartsvc.Item, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return cartsvc.Item{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return cartsvc.Item{ProductID: productID, SizeID: req.SizeID, Color: req.Color}, nil
}

func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, doc)
	}
}

func AddCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		doc, err := svc.Add(r.Context(), sessionID, cartsvc.AddInput{
			ProductID: productID,
			SizeID:    payload.SizeID,
			Color:     payload.Color,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, doc)
	}
}

func AdjustCartQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := payload.toItem()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.AdjustQuantity(r.Context(), sessionID, item, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, doc)
	}
}

func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := payload.toItem()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Remove(r.Context(), sessionID, item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, doc)
	}
}

func ClearCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}

func CartTotals(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		totals, err := svc.Totals(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}

func Checkout(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.Checkout(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
