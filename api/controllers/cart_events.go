package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sweetslice/storefront/api/middleware"
	"github.com/sweetslice/storefront/api/responses"
	"github.com/sweetslice/storefront/internal/cart"
	pkgerrors "github.com/sweetslice/storefront/pkg/errors"
	"github.com/sweetslice/storefront/pkg/logger"
)

const DefaultHeartbeat = 15 * time.Second

// CartSubscriber hands out per-session event channels.
type CartSubscriber interface {
	Subscribe(session string) (<-chan cart.Event, func())
}

// CartEvents streams cart changes for the request's session as server-sent events. The
// stream opens with a snapshot of the current cart, then one "cart" event per change.
func CartEvents(svc cart.Service, subs CartSubscriber, heartbeat time.Duration, logg *logger.Logger) http.HandlerFunc {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || subs == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("cart"))
			return
		}
		ctx := r.Context()
		session := middleware.CartSessionFromContext(ctx)
		if session == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session missing"))
			return
		}

		events, cancel := subs.Subscribe(session)
		defer cancel()

		view, err := svc.Get(ctx, session)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rc := http.NewResponseController(w)
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		if err := writeEvent(w, "snapshot", cart.NewViewDTO(*view)); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			if logg != nil {
				logg.Error(ctx, "cart stream cannot flush", err)
			}
			return
		}

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := writeEvent(w, "cart", ev); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
