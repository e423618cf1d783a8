package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/db"
	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
)

// Service exposes menu, category, and table operations.
type Service interface {
	ListAvailableMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error)
	ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error)
	ListTables(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error)

	ListAllMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, input MenuItemInput) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, input MenuItemUpdateInput) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateTable(ctx context.Context, input TableInput) (*models.Table, error)
	DeleteTable(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo CatalogRepository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo CatalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// MenuItemInput captures the payload for a new menu item.
type MenuItemInput struct {
	RestaurantID uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	Description  *string
	Price        decimal.Decimal
	Availability *bool
}

// MenuItemUpdateInput holds the mutable menu item fields.
type MenuItemUpdateInput struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	Availability *bool
	CategoryID   *uuid.UUID
}

// CategoryInput captures the payload for a new category.
type CategoryInput struct {
	RestaurantID uuid.UUID
	Name         string
	Description  *string
}

// TableInput captures the payload for a new table.
type TableInput struct {
	RestaurantID    uuid.UUID
	TableNumber     string
	SeatingCapacity int
	Link            *string
}

func (s *service) ListAvailableMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	rows, err := s.repo.ListMenuItems(ctx, restaurantID, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}
	return rows, nil
}

func (s *service) ListAllMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	rows, err := s.repo.ListMenuItems(ctx, restaurantID, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}
	return rows, nil
}

func (s *service) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	rows, err := s.repo.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *service) ListTables(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	rows, err := s.repo.ListTables(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tables")
	}
	return rows, nil
}

func (s *service) CreateMenuItem(ctx context.Context, input MenuItemInput) (*models.MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	if input.RestaurantID == uuid.Nil || input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id and category id are required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	category, err := s.repo.FindCategory(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if category.RestaurantID != input.RestaurantID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category belongs to a different restaurant")
	}

	availability := true
	if input.Availability != nil {
		availability = *input.Availability
	}

	item := &models.MenuItem{
		RestaurantID: input.RestaurantID,
		CategoryID:   input.CategoryID,
		Name:         name,
		Description:  input.Description,
		Price:        input.Price,
		Availability: availability,
	}
	created, err := s.repo.CreateMenuItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create menu item")
	}
	return created, nil
}

func (s *service) UpdateMenuItem(ctx context.Context, id uuid.UUID, input MenuItemUpdateInput) (*models.MenuItem, error) {
	item, err := s.findMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item name cannot be empty")
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		item.Price = *input.Price
	}
	if input.Availability != nil {
		item.Availability = *input.Availability
	}
	if input.CategoryID != nil {
		category, err := s.repo.FindCategory(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		if category.RestaurantID != item.RestaurantID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category belongs to a different restaurant")
		}
		item.CategoryID = *input.CategoryID
	}

	updated, err := s.repo.UpdateMenuItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update menu item")
	}
	return updated, nil
}

func (s *service) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findMenuItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete menu item")
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if input.RestaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	category := &models.Category{
		RestaurantID: input.RestaurantID,
		Name:         name,
		Description:  input.Description,
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if _, err := s.repo.FindCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) CreateTable(ctx context.Context, input TableInput) (*models.Table, error) {
	number := strings.TrimSpace(input.TableNumber)
	if input.RestaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table number is required")
	}
	if input.SeatingCapacity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seating capacity must be positive")
	}

	table := &models.Table{
		RestaurantID:    input.RestaurantID,
		TableNumber:     number,
		SeatingCapacity: input.SeatingCapacity,
		Link:            input.Link,
	}
	created, err := s.repo.CreateTable(ctx, table)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_tables_restaurant_number") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "table number already exists for this restaurant")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create table")
	}
	return created, nil
}

func (s *service) DeleteTable(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "table id is required")
	}
	if err := s.repo.DeleteTable(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete table")
	}
	return nil
}

func (s *service) findMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}
	item, err := s.repo.FindMenuItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}
	return item, nil
}
