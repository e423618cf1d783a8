package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the per-user staging area for one restaurant. The unique index on
// (user_id, restaurant_id) guarantees at most one cart per pair, which is what
// lets lazy creation race safely.
type Cart struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_carts_user_restaurant" json:"user_id"`
	RestaurantID uuid.UUID       `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex:idx_carts_user_restaurant" json:"restaurant_id"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null" json:"total_price"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items      []CartItem  `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
}

// CartItem references one distinct menu item in a cart. Multiplicity is always
// one per item; UnitPrice is the menu price seen at the last cart mutation.
type CartItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CartID    uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_item" json:"cart_id"`
	ItemID    uuid.UUID       `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_item" json:"item_id"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Item *MenuItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"item,omitempty"`
}
