package controllers

import (
	"net/http"

	"github.com/sweetslice/storefront/api/middleware"
	"github.com/sweetslice/storefront/api/responses"
	"github.com/sweetslice/storefront/api/validators"
	"github.com/sweetslice/storefront/internal/cart"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
)

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, session string) (*cart.View, error) {
		return svc.Get(r.Context(), session)
	})
}

func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, session string) (*cart.View, error) {
		var payload cart.AddItemInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.Add(r.Context(), session, payload)
	})
}

func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, session string) (*cart.View, error) {
		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.UpdateQuantity(r.Context(), session, pathParam(r, "lineId"), payload.Quantity)
	})
}

func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, session string) (*cart.View, error) {
		return svc.Remove(r.Context(), session, pathParam(r, "lineId"))
	})
}

// CartRemoveProduct drops every line for a product, whatever its size or flavor.
func CartRemoveProduct(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, session string) (*cart.View, error) {
		return svc.RemoveProduct(r.Context(), session, pathParam(r, "productId"))
	})
}

func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, session string) (*cart.View, error) {
		return svc.Clear(r.Context(), session)
	})
}

func cartHandler(svc cart.Service, logg *logger.Logger, op func(r *http.Request, session string) (*cart.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("cart"))
			return
		}
		session := middleware.CartSessionFromContext(r.Context())
		if session == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session missing"))
			return
		}
		view, err := op(r, session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart.NewViewDTO(*view))
	}
}
