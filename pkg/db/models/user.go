package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/PollinateIQ/dineup-backend/pkg/enums"
)

// User represents the canonical identity entity. Customers and staff belong to
// a restaurant; platform admins have no restaurant binding.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RestaurantID *uuid.UUID     `gorm:"column:restaurant_id;type:uuid" json:"restaurant_id,omitempty"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null" json:"role"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
}
