package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PollinateIQ/dineup-backend/api/responses"
	"github.com/PollinateIQ/dineup-backend/api/validators"
	catalogsvc "github.com/PollinateIQ/dineup-backend/internal/catalog"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/logger"
)

type menuItemCreateRequest struct {
	RestaurantID uuid.UUID `json:"restaurant_id" validate:"required"`
	CategoryID   uuid.UUID `json:"category_id" validate:"required"`
	Name         string    `json:"name" validate:"required,max=200"`
	Description  *string   `json:"description"`
	Price        string    `json:"price" validate:"required"`
	Availability *bool     `json:"availability"`
}

type menuItemUpdateRequest struct {
	Name         *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string    `json:"description"`
	Price        *string    `json:"price"`
	Availability *bool      `json:"availability"`
	CategoryID   *uuid.UUID `json:"category_id"`
}

type categoryCreateRequest struct {
	RestaurantID uuid.UUID `json:"restaurant_id" validate:"required"`
	Name         string    `json:"name" validate:"required,max=120"`
	Description  *string   `json:"description"`
}

type tableCreateRequest struct {
	RestaurantID    uuid.UUID `json:"restaurant_id" validate:"required"`
	TableNumber     string    `json:"table_number" validate:"required,max=20"`
	SeatingCapacity int       `json:"seating_capacity" validate:"required,min=1"`
	Link            *string   `json:"link"`
}

// AdminMenuItemsList returns a restaurant's full menu, unavailable items
// included.
func AdminMenuItemsList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		restaurantID, err := requiredRestaurantQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListAllMenuItems(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// AdminMenuItemCreate adds a menu item to a restaurant's catalog.
func AdminMenuItemCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body menuItemCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(body.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		item, err := svc.CreateMenuItem(r.Context(), catalogsvc.MenuItemInput{
			RestaurantID: body.RestaurantID,
			CategoryID:   body.CategoryID,
			Name:         body.Name,
			Description:  body.Description,
			Price:        price,
			Availability: body.Availability,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AdminMenuItemUpdate applies a partial menu item update. Toggling
// availability is the usual path for sold-out items.
func AdminMenuItemUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body menuItemUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.MenuItemUpdateInput{
			Name:         body.Name,
			Description:  body.Description,
			Availability: body.Availability,
			CategoryID:   body.CategoryID,
		}
		if body.Price != nil {
			price, err := decimal.NewFromString(*body.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
				return
			}
			input.Price = &price
		}

		item, err := svc.UpdateMenuItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// AdminMenuItemDelete removes a menu item.
func AdminMenuItemDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMenuItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminCategoriesList returns a restaurant's categories.
func AdminCategoriesList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		restaurantID, err := requiredRestaurantQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categories, err := svc.ListCategories(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

// AdminCategoryCreate adds a category to a restaurant's catalog.
func AdminCategoryCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body categoryCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalogsvc.CategoryInput{
			RestaurantID: body.RestaurantID,
			Name:         body.Name,
			Description:  body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// AdminCategoryDelete removes a category and cascades to its menu items.
func AdminCategoryDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminTablesList returns a restaurant's seating tables.
func AdminTablesList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		restaurantID, err := requiredRestaurantQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tables, err := svc.ListTables(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tables)
	}
}

// AdminTableCreate registers a seating table. Table numbers are unique per
// restaurant.
func AdminTableCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body tableCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.CreateTable(r.Context(), catalogsvc.TableInput{
			RestaurantID:    body.RestaurantID,
			TableNumber:     body.TableNumber,
			SeatingCapacity: body.SeatingCapacity,
			Link:            body.Link,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, table)
	}
}

// AdminTableDelete removes a seating table.
func AdminTableDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteTable(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func requiredRestaurantQuery(r *http.Request) (uuid.UUID, error) {
	raw := r.URL.Query().Get("restaurant_id")
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant_id query parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant_id")
	}
	return id, nil
}
