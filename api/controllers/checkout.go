package controllers

import (
	"net/http"

	"github.com/sweetslice/storefront/api/middleware"
	"github.com/sweetslice/storefront/api/responses"
	"github.com/sweetslice/storefront/api/validators"
	"github.com/sweetslice/storefront/internal/checkout"
	"github.com/sweetslice/storefront/internal/orders"
	"github.com/sweetslice/storefront/pkg/enums"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
)

type checkoutValidateRequest struct {
	Step string `json:"step"`
	checkout.Draft
}

type checkoutQuoteRequest struct {
	DeliveryMethod string `json:"delivery_method"`
}

// CheckoutValidate checks one form step so the client can gate the next page.
func CheckoutValidate(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout"))
			return
		}
		var payload checkoutValidateRequest
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		step, err := checkout.ParseStep(payload.Step)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout step").
				WithDetails(map[string]string{"step": "must be contact or delivery"}))
			return
		}
		if err := svc.Validate(r.Context(), step, payload.Draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"step": step, "valid": true})
	}
}

func CheckoutQuote(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout"))
			return
		}
		var payload checkoutQuoteRequest
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := enums.ParseDeliveryMethod(payload.DeliveryMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery method").
				WithDetails(map[string]string{"delivery_method": "must be pickup or delivery"}))
			return
		}
		quote, err := svc.Quote(r.Context(), middleware.CartSessionFromContext(r.Context()), method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkout.NewQuoteDTO(*quote))
	}
}

// CheckoutPlaceOrder turns the session's cart into an order and returns its confirmation.
func CheckoutPlaceOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout"))
			return
		}
		var draft checkout.Draft
		if err := validators.DecodeJSON(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.PlaceOrder(r.Context(), middleware.CartSessionFromContext(r.Context()), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, orders.NewOrderDTO(*order))
	}
}
