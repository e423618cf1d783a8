package controllers

import (
	"net/http"

	"github.com/PollinateIQ/dineup-backend/api/middleware"
	"github.com/PollinateIQ/dineup-backend/api/responses"
	catalogsvc "github.com/PollinateIQ/dineup-backend/internal/catalog"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/logger"
)

// MenuItemsList returns the available menu for the caller's restaurant.
// Unavailable items are filtered out before this surface.
func MenuItemsList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		restaurantID := middleware.RestaurantIDFromContext(r.Context())
		if restaurantID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context missing"))
			return
		}

		items, err := svc.ListAvailableMenuItems(r.Context(), *restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// CategoriesList returns the caller's restaurant categories.
func CategoriesList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		restaurantID := middleware.RestaurantIDFromContext(r.Context())
		if restaurantID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context missing"))
			return
		}

		categories, err := svc.ListCategories(r.Context(), *restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

// TablesList returns the caller's restaurant seating tables.
func TablesList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		restaurantID := middleware.RestaurantIDFromContext(r.Context())
		if restaurantID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context missing"))
			return
		}

		tables, err := svc.ListTables(r.Context(), *restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tables)
	}
}
