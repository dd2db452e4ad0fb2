package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurant belongs to exactly one owner (unique index on OwnerID).
// IsActive controls public visibility only; existing orders are unaffected.
type Restaurant struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	OwnerID   uint       `json:"owner_id" gorm:"uniqueIndex;not null"`
	Owner     User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name      string     `json:"name" gorm:"not null"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	MenuItems []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MenuItem prices are fixed-point with 2 fraction digits. Flipping
// IsAvailable never touches orders already placed against the item.
type MenuItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null;index"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
	IsAvailable  bool            `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
