package routes

import (
	"bus_booking/internal/controllers"
	"bus_booking/internal/middleware"

	"github.com/gin-gonic/gin"
)

func BusRoutes(r *gin.Engine) {
	bus := r.Group("/buses")
	bus.Use(middleware.OptionalAuth())
	{
		bus.GET("", controllers.ListBuses)
		bus.GET("/:id", controllers.GetBus)
		bus.POST("", controllers.CreateBus)
		bus.PUT("/:id", controllers.UpdateBus)
		bus.DELETE("/:id", controllers.DeleteBus)
	}
}
