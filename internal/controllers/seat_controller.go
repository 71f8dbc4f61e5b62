package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus_booking/internal/config"
	"bus_booking/internal/middleware"
	"bus_booking/internal/services"
)

// Seats have no write endpoints anywhere; they exist only through bus
// creation. Reads are passenger-only by policy.

func ListSeats(c *gin.Context) {
	svc := services.NewFleetService(config.DB)
	seats, err := svc.ListSeats(middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seats": seats})
}

func GetSeat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.NewFleetService(config.DB)
	seat, err := svc.GetSeat(middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seat": seat})
}
