package routes

import (
	"bus_booking/internal/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes mounts the role-scoped signup/login endpoints. :role is one of
// admin, passenger or driver; the service rejects anything else.
func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/:role/signup", controllers.SignupUser)
		auth.POST("/:role/login", controllers.LoginUser)
	}
}
