package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/eurum-fi/eurum/helpers"
	"github.com/eurum-fi/eurum/logger"
	"github.com/eurum-fi/eurum/server"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		// A missing .env file is fine in production where variables are
		// set directly in the environment.
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	stage := os.Getenv("STAGE")
	if !helpers.IsValidStage(stage) {
		stage = helpers.StageLocal
	}

	// Initialize logger first
	logger.InitLogger(stage)
	defer logger.Sync()

	if stage == helpers.StageProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if err := server.InitializeHandlers(); err != nil {
		logger.Fatal("failed to initialize handlers: " + err.Error())
	}
	server.InitializeRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
