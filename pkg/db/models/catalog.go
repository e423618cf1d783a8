package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Table is a physical table inside a restaurant.
type Table struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RestaurantID    uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex:idx_tables_restaurant_number" json:"restaurant_id"`
	TableNumber     string    `gorm:"column:table_number;not null;uniqueIndex:idx_tables_restaurant_number" json:"table_number"`
	SeatingCapacity int       `gorm:"column:seating_capacity;not null" json:"seating_capacity"`
	Link            *string   `gorm:"column:link" json:"link,omitempty"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
}

// Category groups menu items, e.g. appetizers or drinks.
type Category struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;index" json:"restaurant_id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Description  *string   `gorm:"column:description" json:"description,omitempty"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
}

// MenuItem is a priced entry on a restaurant's menu. Price must stay
// non-negative; order lines copy it at checkout rather than referencing it live.
type MenuItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RestaurantID uuid.UUID       `gorm:"column:restaurant_id;type:uuid;not null;index:idx_menu_items_restaurant_category" json:"restaurant_id"`
	CategoryID   uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index:idx_menu_items_restaurant_category" json:"category_id"`
	Name         string          `gorm:"column:name;not null" json:"name"`
	Description  *string         `gorm:"column:description" json:"description,omitempty"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Availability bool            `gorm:"column:availability;not null;default:true" json:"availability"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	Category   *Category   `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// Inventory records stock on hand for a menu item. Data capture only; the
// ordering workflow does not decrement it.
type Inventory struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RestaurantID    uuid.UUID  `gorm:"column:restaurant_id;type:uuid;not null" json:"restaurant_id"`
	ItemID          uuid.UUID  `gorm:"column:item_id;type:uuid;not null" json:"item_id"`
	QuantityInStock int        `gorm:"column:quantity_in_stock;not null" json:"quantity_in_stock"`
	ReorderLevel    int        `gorm:"column:reorder_level;not null" json:"reorder_level"`
	LastRestockedAt *time.Time `gorm:"column:last_restocked_at" json:"last_restocked_at,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	Item       *MenuItem   `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}
