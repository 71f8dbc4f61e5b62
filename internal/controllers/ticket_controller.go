package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus_booking/internal/config"
	"bus_booking/internal/middleware"
	"bus_booking/internal/services"
)

// Tickets are created only by trip fan-out; the reserve transition below is
// their single write endpoint.

func ListTickets(c *gin.Context) {
	svc := services.NewTicketService(config.DB)
	tickets, err := svc.ListTickets(middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func GetTicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.NewTicketService(config.DB)
	ticket, err := svc.GetTicket(middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

// ReserveTicket claims an unreserved ticket for the calling passenger.
func ReserveTicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.NewTicketService(config.DB)
	ticket, err := svc.Reserve(middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}
