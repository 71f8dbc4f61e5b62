// internal/models/bus.go
package models

import (
	"gorm.io/gorm"
)

// SeatsPerBus is the fixed seat inventory every bus is created with.
const SeatsPerBus = 10

type Bus struct {
	gorm.Model
	NumPlate    string `json:"num_plate"`
	DriverID    *uint  `json:"driver_id"` // optional; a driver serves at most one bus at a time
	CreatedByID uint   `json:"created_by"`

	Seats []Seat `gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"seats,omitempty"`
}
