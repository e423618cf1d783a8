package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PollinateIQ/dineup-backend/pkg/enums"
)

// Order is the immutable result of a checkout. TotalPrice is copied from the
// cart at creation and never recomputed afterwards.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RestaurantID uuid.UUID         `gorm:"column:restaurant_id;type:uuid;not null;index" json:"restaurant_id"`
	TableID      *uuid.UUID        `gorm:"column:table_id;type:uuid" json:"table_id,omitempty"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	TotalPrice   decimal.Decimal   `gorm:"column:total_price;type:numeric(10,2);not null" json:"total_price"`
	Status       enums.OrderStatus `gorm:"column:status;type:text;not null" json:"status"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	Table      *Table      `gorm:"foreignKey:TableID;constraint:OnDelete:CASCADE" json:"-"`
	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// OrderItem is a frozen snapshot of one line inside an order. Price is
// unit price times quantity captured at checkout; it is never recomputed from
// the live menu item.
type OrderItem struct {
	ID       uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID  uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	ItemID   uuid.UUID       `gorm:"column:item_id;type:uuid;not null" json:"item_id"`
	Quantity int             `gorm:"column:quantity;not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`

	Item *MenuItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"item,omitempty"`
}
