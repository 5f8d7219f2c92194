package main

import (
	"log"
	"net/http"

	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/config"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/logger"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/middleware"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router
	r := routes.SetupRouter()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
