package main

import (
	"log"
	"net/http"

	"bus_booking/internal/config"
	"bus_booking/internal/logger"
	"bus_booking/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router
	r := routes.SetupRouter()

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", r))
}
