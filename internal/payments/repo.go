package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	"github.com/PollinateIQ/dineup-backend/pkg/pagination"
)

// PaymentRepository defines the persistence surface required by the recorder.
type PaymentRepository interface {
	WithTx(tx *gorm.DB) PaymentRepository
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error
	CreateTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Payment, error)
}

// Repository is the gorm-backed implementation.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a payment repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) PaymentRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreatePayment inserts a new payment row.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// UpdatePaymentStatus persists a payment status change.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CreateTransaction inserts the receipt record derived from a payment.
func (r *Repository) CreateTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return nil, err
	}
	return transaction, nil
}

// ListByUser returns payments against the user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Payment, error) {
	page = pagination.Normalize(page)
	var rows []models.Payment
	err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.user_id = ?", userID).
		Order("payments.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
