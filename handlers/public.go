package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gledyson007/delivery-comida/models"
	"github.com/gledyson007/delivery-comida/statemachine"
)

type PublicHandler struct {
	DB *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{DB: db}
}

// ListRestaurants returns all active restaurants.
func (h *PublicHandler) ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := h.DB.Where("is_active = ?", true)
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetMenu returns the available menu items of one restaurant.
func (h *PublicHandler) GetMenu(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var items []models.MenuItem
	h.DB.Where("restaurant_id = ? AND is_available = ?", restaurant.ID, true).Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// GetStateMachineInfo documents the order lifecycle.
func (h *PublicHandler) GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.AllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusCancelled},
		"description":     "Order lifecycle state machine. Driver claims are not transitions: they set the driver while the status stays out_for_delivery.",
	})
}
