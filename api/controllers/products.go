package controllers

import (
	"net/http"
	"strings"

	"github.com/sweetslice/storefront/api/responses"
	"github.com/sweetslice/storefront/api/validators"
	"github.com/sweetslice/storefront/internal/catalog"
	"github.com/sweetslice/storefront/pkg/enums"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
)

const (
	maxQueryLength   = 100
	maxFeaturedLimit = 50
	categoryAll      = "all"
)

// ProductsBrowse lists products filtered by ?category, ?q and ordered by ?sort.
func ProductsBrowse(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("catalog"))
			return
		}

		query := r.URL.Query()
		input := catalog.BrowseInput{Query: validators.SanitizeString(query.Get("q"), maxQueryLength)}

		if raw := strings.TrimSpace(query.Get("category")); raw != "" && !strings.EqualFold(raw, categoryAll) {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").
					WithDetails(map[string]string{"category": "must be all, cakes, cupcakes or pastries"}))
				return
			}
			input.Category = &category
		}

		sort, err := enums.ParseProductSort(query.Get("sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").
				WithDetails(map[string]string{"sort": "must be name, price-low or price-high"}))
			return
		}
		input.Sort = sort

		products, err := svc.Browse(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, catalog.NewProductDTOs(products), len(products))
	}
}

func ProductsFeatured(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("catalog"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, maxFeaturedLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := svc.Featured(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, catalog.NewProductDTOs(products), len(products))
	}
}

func ProductsSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("catalog"))
			return
		}
		includeCategory, err := validators.ParseQueryBool(r, "include_category", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		text := validators.SanitizeString(r.URL.Query().Get("q"), maxQueryLength)
		products, err := svc.Search(r.Context(), text, includeCategory)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, catalog.NewProductDTOs(products), len(products))
	}
}

func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("catalog"))
			return
		}
		id, ok := catalog.ParseID(pathParam(r, "productId"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		product, err := svc.Find(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog.NewProductDTO(*product))
	}
}
