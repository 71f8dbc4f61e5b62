package models

import (
	"gorm.io/gorm"
)

// Route is a way between two places that trips run along.
// Reference data, created and maintained by admins only.
type Route struct {
	gorm.Model

	Name        string `json:"name" binding:"required"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	CreatedByID uint   `json:"created_by"`
}
