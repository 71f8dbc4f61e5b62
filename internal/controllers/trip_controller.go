package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bus_booking/internal/config"
	"bus_booking/internal/middleware"
	"bus_booking/internal/services"
)

// CreateTrip schedules a trip; its ticket fan-out is transactional with the
// trip itself and comes back in the response.
func CreateTrip(c *gin.Context) {
	var input struct {
		Name    string    `json:"name" binding:"required"`
		BeginAt time.Time `json:"begin_at" binding:"required"`
		RouteID uint      `json:"route_id" binding:"required"`
		BusID   uint      `json:"bus_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip input: " + err.Error()})
		return
	}

	svc := services.NewTripService(config.DB)
	trip, err := svc.CreateTrip(middleware.CallerFrom(c), services.TripInput{
		Name:    input.Name,
		BeginAt: input.BeginAt,
		RouteID: input.RouteID,
		BusID:   input.BusID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// ListTrips is public.
func ListTrips(c *gin.Context) {
	svc := services.NewTripService(config.DB)
	trips, err := svc.ListTrips(middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GetTrip is public.
func GetTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.NewTripService(config.DB)
	trip, err := svc.GetTrip(middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// UpdateTrip changes the trip name or start time.
func UpdateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input struct {
		Name    *string    `json:"name"`
		BeginAt *time.Time `json:"begin_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewTripService(config.DB)
	trip, err := svc.UpdateTrip(middleware.CallerFrom(c), id, services.TripUpdate{
		Name:    input.Name,
		BeginAt: input.BeginAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// DeleteTrip removes a trip together with its tickets.
func DeleteTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.NewTripService(config.DB)
	if err := svc.DeleteTrip(middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted"})
}
