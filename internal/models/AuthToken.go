package models

import "gorm.io/gorm"

// AuthToken is the single persistent bearer token for a user. Logging in
// again returns the same key until it expires and gets rotated.
type AuthToken struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"uniqueIndex"`
	Key    string `json:"key" gorm:"uniqueIndex;size:512"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}
