package main

import (
	"log"
	"time"

	"restaurant-booking-api/config"
	"restaurant-booking-api/handlers"
	"restaurant-booking-api/middleware"
	"restaurant-booking-api/routes"
	"restaurant-booking-api/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect and migrate the database
	db, err := store.Connect(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database connected and migrated successfully")

	st := store.NewGorm(db)
	if cfg.SeedSampleData {
		if err := store.SeedSampleData(st, cfg.BcryptCost); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.MaxBodySize(cfg.MaxBodyBytes))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	h := handlers.New(st, cfg)
	routes.SetupRoutes(r, h, cfg)

	log.Printf("Server running on http://localhost:%s in %s mode", cfg.Port, cfg.GoEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
