package controllers

import (
	"net/http"

	"github.com/PollinateIQ/dineup-backend/api/responses"
	"github.com/PollinateIQ/dineup-backend/api/validators"
	restaurantsvc "github.com/PollinateIQ/dineup-backend/internal/restaurants"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/logger"
)

type restaurantCreateRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Address     string   `json:"address" validate:"required"`
	ContactInfo string   `json:"contact_info" validate:"required"`
	Identifier  string   `json:"identifier" validate:"required,max=100"`
	Cuisines    []string `json:"cuisines"`
}

type restaurantUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Address     *string  `json:"address" validate:"omitempty,min=1"`
	ContactInfo *string  `json:"contact_info" validate:"omitempty,min=1"`
	Cuisines    []string `json:"cuisines"`
}

// AdminRestaurantCreate provisions a new tenant.
func AdminRestaurantCreate(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		var body restaurantCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), restaurantsvc.CreateInput{
			Name:        body.Name,
			Address:     body.Address,
			ContactInfo: body.ContactInfo,
			Identifier:  body.Identifier,
			Cuisines:    body.Cuisines,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// AdminRestaurantsList pages through all tenants.
func AdminRestaurantsList(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.List(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, records)
	}
}

// AdminRestaurantGet returns one tenant by id.
func AdminRestaurantGet(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// AdminRestaurantUpdate applies a partial tenant update. The public
// identifier stays fixed once assigned.
func AdminRestaurantUpdate(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body restaurantUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), id, restaurantsvc.UpdateInput{
			Name:        body.Name,
			Address:     body.Address,
			ContactInfo: body.ContactInfo,
			Cuisines:    body.Cuisines,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// AdminRestaurantDelete removes a tenant and, through the schema cascades,
// everything under it.
func AdminRestaurantDelete(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
