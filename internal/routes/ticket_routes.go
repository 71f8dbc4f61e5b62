package routes

import (
	"bus_booking/internal/controllers"
	"bus_booking/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TicketRoutes(r *gin.Engine) {
	ticket := r.Group("/tickets")
	ticket.Use(middleware.RequireAuth())
	{
		ticket.GET("", controllers.ListTickets)
		ticket.GET("/:id", controllers.GetTicket)
		ticket.POST("/:id/reserve", controllers.ReserveTicket)
	}
}
