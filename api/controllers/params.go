package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sweetslice/storefront/internal/catalog"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
)

func pathParam(r *http.Request, key string) string {
	return strings.TrimSpace(chi.URLParam(r, key))
}

func productIDParam(r *http.Request) (int64, error) {
	raw := pathParam(r, "productId")
	id, ok := catalog.ParseID(raw)
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id").
			WithDetails(map[string]string{"productId": "must be a positive integer"})
	}
	return id, nil
}

func unavailable(name string) error {
	return pkgerrors.Newf(pkgerrors.CodeInternal, "%s service unavailable", name)
}
