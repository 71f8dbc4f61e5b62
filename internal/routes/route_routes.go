package routes

import (
	"bus_booking/internal/controllers"
	"bus_booking/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RouteRoutes has public reads and admin-only writes, so the caller is
// resolved optionally and the policy layer decides per action.
func RouteRoutes(r *gin.Engine) {
	route := r.Group("/routes")
	route.Use(middleware.OptionalAuth())
	{
		route.GET("", controllers.ListRoutes)
		route.GET("/:id", controllers.GetRoute)
		route.POST("", controllers.CreateRoute)
		route.PUT("/:id", controllers.UpdateRoute)
		route.DELETE("/:id", controllers.DeleteRoute)
	}
}
