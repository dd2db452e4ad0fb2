package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gledyson007/delivery-comida/middleware"
	"github.com/gledyson007/delivery-comida/models"
	"github.com/gledyson007/delivery-comida/realtime"
)

type DriverHandler struct {
	DB    *gorm.DB
	Store realtime.Store
	Log   *logrus.Logger
}

func NewDriverHandler(db *gorm.DB, store realtime.Store, log *logrus.Logger) *DriverHandler {
	return &DriverHandler{DB: db, Store: store, Log: log}
}

// ListAvailableOrders shows the claimable pool: out_for_delivery with no
// driver assigned, oldest first.
func (h *DriverHandler) ListAvailableOrders(c *gin.Context) {
	var orders []models.Order
	h.DB.Preload("Restaurant").
		Where("status = ? AND driver_id IS NULL", models.StatusOutForDelivery).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ListMyDeliveries returns all orders assigned to the caller.
func (h *DriverHandler) ListMyDeliveries(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	var orders []models.Order
	h.DB.Preload("Items.MenuItem").Preload("Restaurant").
		Where("driver_id = ?", driverID).
		Order("updated_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ClaimOrder assigns the order to the caller with a single conditional
// update. The WHERE clause carries the whole eligibility predicate, so under
// concurrent claims the database lets exactly one of them through; everyone
// else matches zero rows. A denied claim does not reveal whether the order
// was taken a moment ago or never claimable at all.
func (h *DriverHandler) ClaimOrder(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	res := h.DB.Model(&models.Order{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", orderID, models.StatusOutForDelivery).
		Update("driver_id", driverID)
	if res.Error != nil {
		h.Log.WithError(res.Error).Error("claim update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim order"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is no longer available"})
		return
	}

	var order models.Order
	h.DB.Preload("Restaurant").Preload("Items.MenuItem").First(&order, orderID)

	h.Log.WithFields(logrus.Fields{
		"order_id":  orderID,
		"driver_id": driverID,
	}).Info("order claimed")

	c.JSON(http.StatusOK, gin.H{
		"message": "Order claimed successfully",
		"order":   order,
	})
}

type PublishLocationRequest struct {
	// Pointers so a legitimate 0.0 still passes the required check.
	Lat *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
}

// PublishLocation writes the caller's position to the real-time store under
// the order's deterministic path. Only the assigned driver may publish, and
// a wrong driver is told the order does not exist.
func (h *DriverHandler) PublishLocation(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req PublishLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := h.DB.
		Where("id = ? AND driver_id = ?", orderID, driverID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	loc := realtime.DriverLocation{Lat: *req.Lat, Lng: *req.Lng, DriverID: driverID}
	if err := h.Store.Set(c.Request.Context(), realtime.OrderPath(order.ID), loc); err != nil {
		h.Log.WithError(err).Error("failed to publish location")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to publish location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "location updated"})
}
