package models

import (
	"gorm.io/gorm"
)

// Ticket is the reservable unit for one seat on one trip. PassengerID is nil
// exactly while Reserved is false; the only mutation ever applied to a ticket
// is the one-shot claim by a passenger.
type Ticket struct {
	gorm.Model

	Reserved    bool  `json:"reserved" gorm:"not null;default:false"`
	PassengerID *uint `json:"passenger_id"`
	SeatID      uint  `json:"seat_id" gorm:"index"`
	TripID      uint  `json:"trip_id" gorm:"index"`
	CreatedByID uint  `json:"created_by"`
}
