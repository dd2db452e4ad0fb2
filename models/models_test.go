package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gledyson007/delivery-comida/models"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"customer", "driver", "owner"} {
		r, err := models.ParseRole(s)
		assert.NoError(t, err)
		assert.Equal(t, models.Role(s), r)
	}
	for _, s := range []string{"", "admin", "Customer", "restaurant"} {
		_, err := models.ParseRole(s)
		assert.Error(t, err, "role %q", s)
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "in_progress", "out_for_delivery", "cancelled"} {
		st, err := models.ParseOrderStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatus(s), st)
	}
	for _, s := range []string{"", "delivered", "PENDING"} {
		_, err := models.ParseOrderStatus(s)
		assert.Error(t, err, "status %q", s)
	}
}
