package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip is a scheduled run of one bus along one route. Creating a trip fans
// out one ticket per seat of the bound bus.
type Trip struct {
	gorm.Model

	Name        string    `json:"name" binding:"required"`
	BeginAt     time.Time `json:"begin_at"`
	RouteID     uint      `json:"route_id"`
	BusID       uint      `json:"bus_id"`
	CreatedByID uint      `json:"created_by"`

	Tickets []Ticket `gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tickets,omitempty"`

	// TicketIDs is what public reads expose instead of ticket rows: ticket
	// reads are passenger-only, so trip listings carry bare identifiers.
	TicketIDs []uint `gorm:"-" json:"ticket_ids,omitempty"`
}
