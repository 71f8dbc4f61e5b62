package routes

import (
	"bus_booking/internal/controllers"
	"bus_booking/internal/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine) {
	user := r.Group("/users")
	user.Use(middleware.RequireAuth())
	{
		user.GET("", controllers.ListPassengers)
		user.GET("/:id", controllers.GetProfile)
		user.PUT("/:id", controllers.UpdateProfile)
	}
}
