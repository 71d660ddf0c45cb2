package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/cipondok/astra-villa-nexus-sub022/channel"
	"github.com/cipondok/astra-villa-nexus-sub022/db"
	"github.com/cipondok/astra-villa-nexus-sub022/handlers"
)

func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("cleanup_interval", 30*time.Minute)
	v.SetEnvPrefix("collab")
	v.AutomaticEnv()
	return v
}

func main() {
	config := loadConfig()

	// Create a new Gin router
	router := gin.Default()

	// Session store and per-session channel registry
	store := db.NewStore()
	registry := channel.NewRegistry()

	collabHandler := handlers.NewCollabHandler(store, registry, config.GetDuration("session_ttl"))

	// Set up periodic cleanup for expired sessions
	go func() {
		ticker := time.NewTicker(config.GetDuration("cleanup_interval"))
		defer ticker.Stop()

		for range ticker.C {
			count := store.CleanupExpired()
			log.Printf("Cleaned up %d expired shared searches", count)
		}
	}()

	// API Routes
	api := router.Group("/api")
	{
		// Share the caller's current filters
		api.POST("/shared-searches", collabHandler.CreateSharedSearch)

		// Shared search routes
		shared := api.Group("/shared-searches/:id")
		{
			shared.GET("", collabHandler.GetSharedSearch)

			// WebSocket endpoint for real-time collaboration
			shared.GET("/ws", collabHandler.StreamSession)
		}
	}

	// Start the server
	addr := config.GetString("addr")
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
