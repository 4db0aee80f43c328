package middleware

import (
	"net/http"
	"strings"

	"github.com/sweetslice/storefront/api/responses"
	"github.com/sweetslice/storefront/internal/cart"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
)

const (
	CartSessionHeader = "X-Cart-Session"
	cartSessionQuery  = "session"
)

// CartSession resolves the cart session from the X-Cart-Session header, or the session
// query parameter for EventSource clients that cannot set headers. A request without one
// gets a fresh session, echoed back in the response header.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := strings.TrimSpace(r.Header.Get(CartSessionHeader))
			if session == "" {
				session = strings.TrimSpace(r.URL.Query().Get(cartSessionQuery))
			}
			if session == "" {
				session = cart.NewSession()
			}
			if !cart.ValidSession(session) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid cart session").
					WithDetails(map[string]string{"session": "must be 1-64 letters, digits, '-' or '_'"}))
				return
			}

			w.Header().Set(CartSessionHeader, session)
			ctx := WithCartSession(r.Context(), session)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, session)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
