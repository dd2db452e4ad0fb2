package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gledyson007/delivery-comida/handlers"
	"github.com/gledyson007/delivery-comida/middleware"
	"github.com/gledyson007/delivery-comida/models"
	"github.com/gledyson007/delivery-comida/realtime"
)

// SetupRoutes wires handler construction and route registration. All
// dependencies come in from the caller; nothing here touches globals.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store realtime.Store, log *logrus.Logger, jwtSecret []byte) {
	publicH := handlers.NewPublicHandler(db)
	customerH := handlers.NewCustomerHandler(db, store, log)
	restaurantH := handlers.NewRestaurantHandler(db, log)
	driverH := handlers.NewDriverHandler(db, store, log)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/restaurants", publicH.ListRestaurants)
		public.GET("/restaurants/:id/menu", publicH.GetMenu)
		public.GET("/state-machine", publicH.GetStateMachineInfo)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", customerH.CreateOrder)
		customer.GET("/orders", customerH.ListOrders)
		customer.GET("/orders/:id", customerH.GetOrder)
		customer.GET("/orders/:id/track", customerH.TrackOrder)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RoleOwner))
	{
		restaurant.GET("/orders", restaurantH.ListOrders)
		restaurant.PUT("/orders/:id/status", restaurantH.UpdateOrderStatus)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/driver")
	driver.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("/orders/available", driverH.ListAvailableOrders)
		driver.GET("/orders/my-deliveries", driverH.ListMyDeliveries)
		driver.PUT("/orders/:id/claim", driverH.ClaimOrder)
		driver.PUT("/orders/:id/location", driverH.PublishLocation)
	}
}
