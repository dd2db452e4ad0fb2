package models

import (
	"fmt"
	"time"
)

// Role is the closed set of principal roles. Every permission boundary
// matches on it exhaustively; anything else is rejected at the auth layer.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleOwner    Role = "owner"
)

// ParseRole validates a raw role string coming off a token or the wire.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleDriver, RoleOwner:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User mirrors the identity provider's principal. Credentials live with the
// provider, not here. Role is immutable once assigned.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
