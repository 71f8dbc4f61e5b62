package routes

import (
	"bus_booking/internal/controllers"
	"bus_booking/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SeatRoutes(r *gin.Engine) {
	seat := r.Group("/seats")
	seat.Use(middleware.RequireAuth())
	{
		seat.GET("", controllers.ListSeats)
		seat.GET("/:id", controllers.GetSeat)
	}
}
