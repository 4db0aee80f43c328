package controllers

import (
	"net/http"
	"strings"

	"github.com/sweetslice/storefront/api/responses"
	"github.com/sweetslice/storefront/internal/orders"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
)

// OrderByCode serves the confirmation page lookup, e.g. /api/v1/orders/ORD-2024-001.
func OrderByCode(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("orders"))
			return
		}
		code := strings.ToUpper(pathParam(r, "orderCode"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		order, err := svc.GetByCode(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders.NewOrderDTO(*order))
	}
}
