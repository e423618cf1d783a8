package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/db"
	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type menuLoader interface {
	FindMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error)
}

// Service exposes the per-user cart staging operations.
type Service interface {
	GetOrCreate(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Cart, error)
	Get(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	SetItems(ctx context.Context, userID, restaurantID uuid.UUID, itemIDs []uuid.UUID) (*models.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo CartRepository
	tx   txRunner
	menu menuLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, menu menuLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if menu == nil {
		return nil, fmt.Errorf("menu loader required")
	}
	return &service{repo: repo, tx: tx, menu: menu}, nil
}

// GetOrCreate returns the user's cart for the restaurant, creating it lazily.
// Creation races resolve through the unique (user_id, restaurant_id) index:
// the loser of the race re-reads the winner's row.
func (s *service) GetOrCreate(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil || restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and restaurant id are required")
	}

	cart, err := s.repo.FindByUserAndRestaurant(ctx, userID, restaurantID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	created, createErr := s.repo.Create(ctx, &models.Cart{
		UserID:       userID,
		RestaurantID: restaurantID,
		TotalPrice:   decimal.Zero,
	})
	if createErr == nil {
		return created, nil
	}
	if db.IsUniqueViolation(createErr, "uq_carts_user_restaurant") {
		cart, err = s.repo.FindByUserAndRestaurant(ctx, userID, restaurantID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart after create race")
		}
		return cart, nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create cart")
}

// Get returns the caller's cart.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

// SetItems replaces the cart's item set wholesale inside one transaction.
// Duplicate ids collapse to a single row and the total is recomputed from the
// current menu prices.
func (s *service) SetItems(ctx context.Context, userID, restaurantID uuid.UUID, itemIDs []uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil || restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and restaurant id are required")
	}

	ids := dedupe(itemIDs)
	menuItems, err := s.loadAndValidateItems(ctx, restaurantID, ids)
	if err != nil {
		return nil, err
	}

	var result *models.Cart
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := s.getOrCreateIn(ctx, repo, userID, restaurantID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		rows := make([]models.CartItem, 0, len(menuItems))
		for _, item := range menuItems {
			rows = append(rows, models.CartItem{
				CartID:    cart.ID,
				ItemID:    item.ID,
				UnitPrice: item.Price,
			})
			total = total.Add(item.Price)
		}

		if err := repo.ReplaceItems(ctx, cart.ID, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace cart items")
		}
		if err := repo.UpdateTotal(ctx, cart.ID, total); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart total")
		}

		reloaded, err := repo.FindByUserAndRestaurant(ctx, userID, restaurantID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
		}
		result = reloaded
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

// Clear empties the cart and zeroes the total. Clearing an already empty cart
// succeeds; a user with no cart at all gets NotFound.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.ReplaceItems(ctx, cart.ID, nil); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart items")
		}
		if err := repo.UpdateTotal(ctx, cart.ID, decimal.Zero); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset cart total")
		}
		return nil
	})
}

func (s *service) getOrCreateIn(ctx context.Context, repo CartRepository, userID, restaurantID uuid.UUID) (*models.Cart, error) {
	cart, err := repo.FindByUserAndRestaurant(ctx, userID, restaurantID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	created, err := repo.Create(ctx, &models.Cart{
		UserID:       userID,
		RestaurantID: restaurantID,
		TotalPrice:   decimal.Zero,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	return created, nil
}

func (s *service) loadAndValidateItems(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	menuItems, err := s.menu.FindMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu items")
	}
	byID := make(map[uuid.UUID]models.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}

	ordered := make([]models.MenuItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown menu item").
				WithDetails(map[string]string{"item_id": id.String()})
		}
		if item.RestaurantID != restaurantID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item belongs to a different restaurant").
				WithDetails(map[string]string{"item_id": id.String()})
		}
		if !item.Availability {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item is not available").
				WithDetails(map[string]string{"item_id": id.String()})
		}
		ordered = append(ordered, item)
	}
	return ordered, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
