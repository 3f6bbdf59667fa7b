package main

import (
	"log"
	"net/http"
	"os"

	"distrigestion/config"
	"distrigestion/notify"
	"distrigestion/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load .env and JWT secret before anything touches them
	config.LoadEnv()

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	config.InitDB()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "DistriGestión Logistics API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🚚 Welcome to the DistriGestión Logistics API",
			"health":  "/health",
			"roles":   []string{"admin", "supervisor", "operador"},
		})
	})

	// Notification hub shared by all chat sessions
	hub := notify.NewHub()

	// Register all routes
	routes.SetupRoutes(r, hub)

	// Start server
	port := config.GetEnv("PORT", "8080")
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
