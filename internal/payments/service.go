package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderLoader interface {
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
}

// Service exposes the payment/receipt recorder.
type Service interface {
	Record(ctx context.Context, userID, orderID uuid.UUID, method enums.PaymentMethod, amount decimal.Decimal) (*models.Payment, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Payment, error)
}

type service struct {
	repo   PaymentRepository
	orders orderLoader
	tx     txRunner
}

// NewService builds a payment service backed by the provided stack.
func NewService(repo PaymentRepository, orders orderLoader, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, orders: orders, tx: tx}, nil
}

// Record captures a payment against the caller's order and writes the matching
// receipt transaction. There is no gateway behind this: the payment is created
// pending and immediately marked completed in the same transaction.
func (s *service) Record(ctx context.Context, userID, orderID uuid.UUID, method enums.PaymentMethod, amount decimal.Decimal) (*models.Payment, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and order id are required")
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	order, err := s.orders.FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if !amount.Equal(order.TotalPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must equal the order total").
			WithDetails(map[string]string{
				"expected": order.TotalPrice.StringFixed(2),
				"got":      amount.StringFixed(2),
			})
	}

	var recorded *models.Payment
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		payment := &models.Payment{
			OrderID:      order.ID,
			RestaurantID: order.RestaurantID,
			Method:       method,
			Status:       enums.PaymentStatusPending,
			Amount:       amount,
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
		}

		if err := repo.UpdatePaymentStatus(ctx, payment.ID, enums.PaymentStatusCompleted); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete payment")
		}
		payment.Status = enums.PaymentStatusCompleted

		receipt := &models.Transaction{
			OrderID:      order.ID,
			PaymentID:    payment.ID,
			RestaurantID: order.RestaurantID,
			Type:         enums.TransactionTypeCharge,
			Amount:       amount,
			Status:       enums.PaymentStatusCompleted,
		}
		if _, err := repo.CreateTransaction(ctx, receipt); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
		}

		recorded = payment
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return recorded, nil
}

// ListForUser returns payments against the caller's own orders.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Payment, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return rows, nil
}
