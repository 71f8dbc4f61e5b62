// internal/controllers/bus_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus_booking/internal/config"
	"bus_booking/internal/middleware"
	"bus_booking/internal/services"
)

// CreateBus lets an admin register a bus; the seat inventory is fanned out
// with it and returned in the response.
func CreateBus(c *gin.Context) {
	var input struct {
		NumPlate string `json:"num_plate" binding:"required"`
		DriverID *uint  `json:"driver_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus input: " + err.Error()})
		return
	}

	svc := services.NewFleetService(config.DB)
	bus, err := svc.CreateBus(middleware.CallerFrom(c), services.BusInput{
		NumPlate: input.NumPlate,
		DriverID: input.DriverID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bus": bus})
}

// ListBuses is admin-only by policy.
func ListBuses(c *gin.Context) {
	svc := services.NewFleetService(config.DB)
	buses, err := svc.ListBuses(middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buses})
}

// GetBus is public.
func GetBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.NewFleetService(config.DB)
	bus, err := svc.GetBus(middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

// UpdateBus changes the plate or driver assignment.
func UpdateBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input struct {
		NumPlate *string `json:"num_plate"`
		DriverID *uint   `json:"driver_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewFleetService(config.DB)
	bus, err := svc.UpdateBus(middleware.CallerFrom(c), id, services.BusUpdate{
		NumPlate: input.NumPlate,
		DriverID: input.DriverID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

// DeleteBus removes a bus, its seats and their tickets.
func DeleteBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.NewFleetService(config.DB)
	if err := svc.DeleteBus(middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}
