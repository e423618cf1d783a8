package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PollinateIQ/dineup-backend/pkg/enums"
)

// Payment records money tendered against an order. Multiple payments per order
// are representable, but the recorder writes exactly one per invocation.
type Payment struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID      uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	RestaurantID uuid.UUID           `gorm:"column:restaurant_id;type:uuid;not null" json:"restaurant_id"`
	Method       enums.PaymentMethod `gorm:"column:method;type:text;not null" json:"method"`
	Status       enums.PaymentStatus `gorm:"column:status;type:text;not null" json:"status"`
	Amount       decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	ExternalRef  *string             `gorm:"column:external_ref" json:"external_ref,omitempty"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Order      *Order      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
}

// Transaction is the receipt record derived from a payment. Amount must stay
// non-negative.
type Transaction struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID      uuid.UUID             `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	PaymentID    uuid.UUID             `gorm:"column:payment_id;type:uuid;not null" json:"payment_id"`
	RestaurantID uuid.UUID             `gorm:"column:restaurant_id;type:uuid;not null" json:"restaurant_id"`
	Type         enums.TransactionType `gorm:"column:type;type:text;not null" json:"type"`
	Amount       decimal.Decimal       `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	Status       enums.PaymentStatus   `gorm:"column:status;type:text;not null" json:"status"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Order      *Order      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Payment    *Payment    `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"-"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
}
