package auth

import (
	"github.com/google/uuid"

	"github.com/PollinateIQ/dineup-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to the token endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is the access/refresh pair returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// LoginResponse contains the tokens and the authenticated user summary.
type LoginResponse struct {
	TokenPair
	User UserSummary `json:"user"`
}

// UserSummary is the public projection of a user returned by auth endpoints.
type UserSummary struct {
	ID           uuid.UUID      `json:"id"`
	RestaurantID *uuid.UUID     `json:"restaurant_id,omitempty"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         enums.UserRole `json:"role"`
}

// RefreshRequest carries the expiring pair to rotate.
type RefreshRequest struct {
	Access  string `json:"access" validate:"required"`
	Refresh string `json:"refresh" validate:"required"`
}

// RegisterRequest captures customer self-registration. Password2 must repeat
// Password exactly.
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	Password2            string `json:"password2" validate:"required"`
	RestaurantIdentifier string `json:"restaurant" validate:"required"`
}
