package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gledyson007/delivery-comida/middleware"
	"github.com/gledyson007/delivery-comida/models"
	"github.com/gledyson007/delivery-comida/realtime"
)

type CustomerHandler struct {
	DB    *gorm.DB
	Store realtime.Store
	Log   *logrus.Logger
}

func NewCustomerHandler(db *gorm.DB, store realtime.Store, log *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{DB: db, Store: store, Log: log}
}

type CreateOrderRequest struct {
	RestaurantID    uint   `json:"restaurant_id" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Items           []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// CreateOrder validates the item set, computes the frozen total and persists
// the order with its items in one transaction. Any bad item aborts the whole
// request before anything is written.
func (h *CustomerHandler) CreateOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is not accepting orders"})
		return
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := h.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Menu item %d not found", reqItem.MenuItemID),
			})
			return
		}
		if menuItem.RestaurantID != restaurant.ID {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Item '%s' does not belong to restaurant '%s'", menuItem.Name, restaurant.Name),
			})
			return
		}
		if !menuItem.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Item '%s' is not available", menuItem.Name),
			})
			return
		}
		total = total.Add(menuItem.Price.Mul(decimal.NewFromInt(int64(reqItem.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
		})
	}

	order := models.Order{
		CustomerID:      &customerID,
		RestaurantID:    restaurant.ID,
		Status:          models.StatusPending,
		TotalPrice:      total,
		DeliveryAddress: req.DeliveryAddress,
		Items:           orderItems,
	}

	// Create writes the order and all items in a single transaction, so a
	// failure leaves no partial order behind.
	if err := h.DB.Create(&order).Error; err != nil {
		h.Log.WithError(err).Error("failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	h.DB.Preload("Items.MenuItem").Preload("Restaurant").First(&order, order.ID)

	h.Log.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"customer_id": customerID,
		"total_price": order.TotalPrice,
	}).Info("order placed")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders returns the caller's own orders, newest first.
func (h *CustomerHandler) ListOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	h.DB.Preload("Items.MenuItem").Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns a single own order. Foreign orders are reported as
// missing, not forbidden, so callers cannot probe which order IDs exist.
func (h *CustomerHandler) GetOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	if err := h.DB.
		Preload("Items.MenuItem").
		Preload("Restaurant").
		Preload("Driver").
		Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// TrackOrder authorizes the caller and discloses the subscription target for
// the order's live location stream. The core never proxies location reads.
func (h *CustomerHandler) TrackOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	if err := h.DB.
		Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Access granted. Subscribe to the path below for location updates.",
		"database_url": h.Store.URL(),
		"path":         realtime.OrderPath(order.ID),
	})
}
