package restaurants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/db"
	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/pagination"
)

// Service exposes tenant management operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Restaurant, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Restaurant, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	List(ctx context.Context, page pagination.Params) ([]models.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo RestaurantRepository
}

// NewService builds a restaurant service backed by the provided repository.
func NewService(repo RestaurantRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("restaurant repository required")
	}
	return &service{repo: repo}, nil
}

// CreateInput captures the payload for a new tenant.
type CreateInput struct {
	Name        string
	Address     string
	ContactInfo string
	Identifier  string
	Cuisines    []string
}

// UpdateInput holds the mutable tenant fields. Nil pointers leave the field
// untouched.
type UpdateInput struct {
	Name        *string
	Address     *string
	ContactInfo *string
	Cuisines    []string
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Restaurant, error) {
	name := strings.TrimSpace(input.Name)
	identifier := strings.TrimSpace(input.Identifier)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant name is required")
	}
	if identifier == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant identifier is required")
	}

	restaurant := &models.Restaurant{
		Name:        name,
		Address:     strings.TrimSpace(input.Address),
		ContactInfo: strings.TrimSpace(input.ContactInfo),
		Identifier:  identifier,
		Cuisines:    pq.StringArray(input.Cuisines),
	}
	created, err := s.repo.Create(ctx, restaurant)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_restaurants_identifier") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "restaurant identifier already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create restaurant")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Restaurant, error) {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant name cannot be empty")
		}
		restaurant.Name = name
	}
	if input.Address != nil {
		restaurant.Address = strings.TrimSpace(*input.Address)
	}
	if input.ContactInfo != nil {
		restaurant.ContactInfo = strings.TrimSpace(*input.ContactInfo)
	}
	if input.Cuisines != nil {
		restaurant.Cuisines = pq.StringArray(input.Cuisines)
	}

	updated, err := s.repo.Update(ctx, restaurant)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update restaurant")
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]models.Restaurant, error) {
	rows, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list restaurants")
	}
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete restaurant")
	}
	return nil
}
