package routes

import (
	"bus_booking/internal/controllers"
	"bus_booking/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TripRoutes(r *gin.Engine) {
	trip := r.Group("/trips")
	trip.Use(middleware.OptionalAuth())
	{
		trip.GET("", controllers.ListTrips)
		trip.GET("/:id", controllers.GetTrip)
		trip.POST("", controllers.CreateTrip)
		trip.PUT("/:id", controllers.UpdateTrip)
		trip.DELETE("/:id", controllers.DeleteTrip)
	}
}
