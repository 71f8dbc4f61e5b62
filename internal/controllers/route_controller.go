package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus_booking/internal/config"
	"bus_booking/internal/middleware"
	"bus_booking/internal/services"
)

// CreateRoute lets an admin define a new route.
func CreateRoute(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Origin      string `json:"origin" binding:"required"`
		Destination string `json:"destination" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	svc := services.NewFleetService(config.DB)
	route, err := svc.CreateRoute(middleware.CallerFrom(c), services.RouteInput{
		Name:        input.Name,
		Origin:      input.Origin,
		Destination: input.Destination,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"route": route})
}

// ListRoutes is public.
func ListRoutes(c *gin.Context) {
	svc := services.NewFleetService(config.DB)
	routes, err := svc.ListRoutes(middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GetRoute is public.
func GetRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.NewFleetService(config.DB)
	route, err := svc.GetRoute(middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// UpdateRoute handles partial updates of route metadata.
func UpdateRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Origin      *string `json:"origin"`
		Destination *string `json:"destination"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewFleetService(config.DB)
	route, err := svc.UpdateRoute(middleware.CallerFrom(c), id, services.RouteUpdate{
		Name:        input.Name,
		Origin:      input.Origin,
		Destination: input.Destination,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// DeleteRoute removes a route.
func DeleteRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.NewFleetService(config.DB)
	if err := svc.DeleteRoute(middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
