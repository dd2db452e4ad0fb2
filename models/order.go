package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle. Delivery completion is
// confirmed out-of-band, so there is no delivered state; cancellation is a
// status, never a row deletion.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusInProgress     OrderStatus = "in_progress"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusCancelled      OrderStatus = "cancelled"
)

// ParseOrderStatus validates a raw status string from the wire.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case StatusPending, StatusInProgress, StatusOutForDelivery, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Order is the central entity. CustomerID is nulled if the customer account
// is deleted; DriverID is set exactly once, by a successful claim; the
// restaurant reference and TotalPrice are frozen at creation.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	CustomerID      *uint           `json:"customer_id" gorm:"index"`
	Customer        *User           `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	DriverID        *uint           `json:"driver_id" gorm:"index"`
	Driver          *User           `json:"driver,omitempty" gorm:"foreignKey:DriverID;constraint:OnDelete:SET NULL"`
	RestaurantID    uint            `json:"restaurant_id" gorm:"not null;index"`
	Restaurant      Restaurant      `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status          OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	DeliveryAddress string          `json:"delivery_address" gorm:"not null"`
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is the join row between an order and a menu item. Immutable
// once written; removed only by cascade with its order.
type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null;index"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
}
