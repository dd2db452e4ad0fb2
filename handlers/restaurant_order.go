package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gledyson007/delivery-comida/middleware"
	"github.com/gledyson007/delivery-comida/models"
	"github.com/gledyson007/delivery-comida/statemachine"
)

type RestaurantHandler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewRestaurantHandler(db *gorm.DB, log *logrus.Logger) *RestaurantHandler {
	return &RestaurantHandler{DB: db, Log: log}
}

// ListOrders returns all orders of the caller's restaurant, newest first.
func (h *RestaurantHandler) ListOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := h.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var orders []models.Order
	query := h.DB.Preload("Items.MenuItem").Preload("Customer").Preload("Driver").
		Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(orders),
		"orders":     orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through the lifecycle. The lookup is
// scoped to the caller's restaurant, so an order the caller does not own
// answers 404 rather than 403.
func (h *RestaurantHandler) UpdateOrderStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	newStatus, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var order models.Order
	if err := h.DB.
		Where("id = ? AND restaurant_id = ?", orderID, restaurant.ID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, newStatus, models.RoleOwner); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         newStatus,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	if err := h.DB.Model(&order).Update("status", newStatus).Error; err != nil {
		h.Log.WithError(err).Error("failed to update order status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	h.Log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     prevStatus,
		"to":       newStatus,
	}).Info("order status updated")

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"current_status":  newStatus,
	})
}
