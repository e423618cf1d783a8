package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Restaurant is the tenant boundary: every other entity hangs off one.
type Restaurant struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Address     string         `gorm:"column:address;not null" json:"address"`
	ContactInfo string         `gorm:"column:contact_info;not null" json:"contact_info"`
	Identifier  string         `gorm:"column:identifier;not null;uniqueIndex" json:"identifier"`
	Cuisines    pq.StringArray `gorm:"column:cuisines;type:text[]" json:"cuisines,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
