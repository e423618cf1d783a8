package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/PollinateIQ/dineup-backend/api/middleware"
	"github.com/PollinateIQ/dineup-backend/api/responses"
	"github.com/PollinateIQ/dineup-backend/api/validators"
	cartsvc "github.com/PollinateIQ/dineup-backend/internal/cart"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/logger"
)

// CartGet returns the caller's cart, creating an empty one on first touch.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		restaurantID := middleware.RestaurantIDFromContext(r.Context())
		if userID == uuid.Nil || restaurantID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context missing"))
			return
		}

		cart, err := svc.GetOrCreate(r.Context(), userID, *restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

type setCartItemsRequest struct {
	Items []uuid.UUID `json:"items"`
}

// CartSetItems replaces the cart contents with the posted item list. An empty
// list empties the cart; duplicates collapse to one line.
func CartSetItems(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		restaurantID := middleware.RestaurantIDFromContext(r.Context())
		if userID == uuid.Nil || restaurantID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context missing"))
			return
		}

		var body setCartItemsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.SetItems(r.Context(), userID, *restaurantID, body.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

// CartClear empties the caller's cart. Clearing an already empty cart
// succeeds.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		if err := svc.Clear(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
