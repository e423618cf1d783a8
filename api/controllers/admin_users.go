package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/PollinateIQ/dineup-backend/api/responses"
	"github.com/PollinateIQ/dineup-backend/api/validators"
	usersvc "github.com/PollinateIQ/dineup-backend/internal/users"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/logger"
)

type userCreateRequest struct {
	Name         string     `json:"name" validate:"required,max=120"`
	Email        string     `json:"email" validate:"required,email"`
	Password     string     `json:"password" validate:"required,min=8"`
	Role         string     `json:"role" validate:"required"`
	RestaurantID *uuid.UUID `json:"restaurant_id"`
}

type userUpdateRequest struct {
	Name         *string    `json:"name" validate:"omitempty,min=1,max=120"`
	Role         *string    `json:"role"`
	RestaurantID *uuid.UUID `json:"restaurant_id"`
}

// AdminUserCreate provisions an account with any role. Staff and customer
// accounts must carry a restaurant binding.
func AdminUserCreate(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var body userCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseUserRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		user, err := svc.Create(r.Context(), usersvc.CreateInput{
			Name:         body.Name,
			Email:        body.Email,
			Password:     body.Password,
			Role:         role,
			RestaurantID: body.RestaurantID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// AdminUsersList pages through accounts, optionally scoped to one
// restaurant via the restaurant_id query parameter.
func AdminUsersList(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var restaurantID *uuid.UUID
		if raw := strings.TrimSpace(r.URL.Query().Get("restaurant_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant_id filter"))
				return
			}
			restaurantID = &id
		}

		users, err := svc.List(r.Context(), restaurantID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, users)
	}
}

// AdminUserGet returns one account by id.
func AdminUserGet(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// AdminUserUpdate applies a partial account update, including role and
// restaurant reassignment.
func AdminUserUpdate(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body userUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := usersvc.AdminUpdateInput{
			Name:         body.Name,
			RestaurantID: body.RestaurantID,
		}
		if body.Role != nil {
			role, err := enums.ParseUserRole(*body.Role)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
				return
			}
			input.Role = &role
		}

		user, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// AdminUserDelete removes an account.
func AdminUserDelete(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "userId")
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
