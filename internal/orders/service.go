package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/internal/cart"
	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the checkout workflow and order reads.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID, restaurantID uuid.UUID, next enums.OrderStatus) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, error)
	GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	ListForRestaurant(ctx context.Context, restaurantID uuid.UUID, status *enums.OrderStatus, page pagination.Params) ([]models.Order, error)
}

type service struct {
	repo     OrderRepository
	cartRepo cart.CartRepository
	tx       txRunner
}

// NewService builds an order service backed by the provided stack.
func NewService(repo OrderRepository, cartRepo cart.CartRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, cartRepo: cartRepo, tx: tx}, nil
}

// Checkout converts the caller's cart into a pending order in one transaction.
// The cart row is locked for update, so of two concurrent checkouts only one
// converts the items; the other observes an empty cart and fails.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	var created *models.Order
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)
		orders := s.repo.WithTx(tx)

		userCart, err := carts.FindByUserForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errEmptyCart()
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(userCart.Items) == 0 {
			return errEmptyCart()
		}

		items := make([]models.OrderItem, 0, len(userCart.Items))
		for _, row := range userCart.Items {
			items = append(items, models.OrderItem{
				ItemID:   row.ItemID,
				Quantity: 1,
				Price:    row.UnitPrice,
			})
		}

		order := &models.Order{
			RestaurantID: userCart.RestaurantID,
			TableID:      nil,
			UserID:       userID,
			TotalPrice:   userCart.TotalPrice,
			Status:       enums.OrderStatusPending,
			Items:        items,
		}
		if _, err := orders.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := carts.ReplaceItems(ctx, userCart.ID, nil); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		if err := carts.UpdateTotal(ctx, userCart.ID, decimal.Zero); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset cart total")
		}

		created = order
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

// UpdateStatus moves an order along the transition table. The order must
// belong to the staff member's restaurant.
func (s *service) UpdateStatus(ctx context.Context, orderID, restaurantID uuid.UUID, next enums.OrderStatus) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if restaurantID != uuid.Nil && order.RestaurantID != restaurantID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, next))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = next
	return order, nil
}

// ListForUser returns the caller's own orders.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

// GetForUser returns one order, restricted to its owner. A foreign order id
// reads as NotFound so existence does not leak.
func (s *service) GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil || userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id and user id are required")
	}
	order, err := s.repo.FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// ListForRestaurant returns the staff view of a restaurant's orders.
func (s *service) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID, status *enums.OrderStatus, page pagination.Params) ([]models.Order, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status filter")
	}
	rows, err := s.repo.ListByRestaurant(ctx, restaurantID, status, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list restaurant orders")
	}
	return rows, nil
}

func errEmptyCart() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
}
