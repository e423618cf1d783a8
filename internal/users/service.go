package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/config"
	"github.com/PollinateIQ/dineup-backend/pkg/db"
	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/pagination"
	"github.com/PollinateIQ/dineup-backend/pkg/security"
)

// Service exposes profile and user administration operations.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdateInput) (*models.User, error)

	Create(ctx context.Context, input CreateInput) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, input AdminUpdateInput) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, restaurantID *uuid.UUID, page pagination.Params) ([]models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        UserRepository
	passwordCfg config.PasswordConfig
}

// NewService builds a user service backed by the provided repository.
func NewService(repo UserRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// ProfileUpdateInput holds the self-service mutable fields. Email and role are
// read-only on this path.
type ProfileUpdateInput struct {
	Name *string
}

// CreateInput captures the payload for an admin-created user.
type CreateInput struct {
	Name         string
	Email        string
	Password     string
	Role         enums.UserRole
	RestaurantID *uuid.UUID
}

// AdminUpdateInput holds the fields an admin may change.
type AdminUpdateInput struct {
	Name         *string
	Role         *enums.UserRole
	RestaurantID *uuid.UUID
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.Get(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdateInput) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		user.Name = name
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return updated, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if input.Role != enums.UserRoleAdmin && input.RestaurantID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required for staff and customer users")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	user := &models.User{
		RestaurantID: input.RestaurantID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input AdminUpdateInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		user.Name = name
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		user.Role = *input.Role
	}
	if input.RestaurantID != nil {
		user.RestaurantID = input.RestaurantID
	}
	if user.Role != enums.UserRoleAdmin && user.RestaurantID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required for staff and customer users")
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func (s *service) List(ctx context.Context, restaurantID *uuid.UUID, page pagination.Params) ([]models.User, error) {
	rows, err := s.repo.List(ctx, restaurantID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
