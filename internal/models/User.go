package models

import "gorm.io/gorm"

// Roles are fixed at registration and never reassigned afterwards.
const (
	RoleAdmin     = "admin"
	RolePassenger = "passenger"
	RoleDriver    = "driver"
)

// User is an account in exactly one role partition. The same username may
// exist once per role, so uniqueness is enforced on the (username, role) pair.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex:idx_users_username_role;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"uniqueIndex:idx_users_username_role;not null"`
}

// ValidRole reports whether role names one of the three known partitions.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RolePassenger, RoleDriver:
		return true
	}
	return false
}
