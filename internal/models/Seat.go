package models

import (
	"gorm.io/gorm"
)

// Seat is one slot of a bus's fixed inventory. Seats only ever come into
// existence as part of bus creation; reservations live on tickets, not here.
type Seat struct {
	gorm.Model

	Number      int  `json:"number" gorm:"uniqueIndex:idx_seats_bus_number"`
	BusID       uint `json:"bus_id" gorm:"uniqueIndex:idx_seats_bus_number"`
	CreatedByID uint `json:"created_by"`
}
