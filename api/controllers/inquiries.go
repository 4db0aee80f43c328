package controllers

import (
	"net/http"

	"github.com/sweetslice/storefront/api/responses"
	"github.com/sweetslice/storefront/api/validators"
	"github.com/sweetslice/storefront/internal/inquiries"
	"github.com/sweetslice/storefront/pkg/logger"
)

func InquiryContact(svc inquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inquiries"))
			return
		}
		var payload inquiries.ContactMessage
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inquiry, err := svc.SubmitContact(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, inquiry)
	}
}

func InquiryCustomOrder(svc inquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inquiries"))
			return
		}
		var payload inquiries.CustomRequest
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inquiry, err := svc.SubmitCustomRequest(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, inquiry)
	}
}

// InquiryOptions lists the select values accepted by the custom order form.
func InquiryOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, inquiries.FormOptions())
	}
}
