package routes

import (
	"github.com/gin-contrib/cors"
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	AuthRoutes(r)
	RouteRoutes(r)
	BusRoutes(r)
	SeatRoutes(r)
	TripRoutes(r)
	TicketRoutes(r)
	UserRoutes(r)

	return r
}
