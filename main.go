package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gledyson007/delivery-comida/config"
	"github.com/gledyson007/delivery-comida/realtime"
	"github.com/gledyson007/delivery-comida/routes"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("database setup failed")
	}

	store := realtime.NewRedisStore(cfg.RedisAddr)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("realtime store unreachable, location publishing will fail until it comes back")
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "delivery-comida",
		})
	})

	routes.SetupRoutes(r, db, store, log, cfg.JWTSecret)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
