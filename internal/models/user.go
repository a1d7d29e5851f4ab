package models

import "time"

// Permission levels. The first account ever registered is promoted to
// PermissionAdmin automatically (bootstrap-admin rule).
const (
	PermissionShopper = 1
	PermissionAdmin   = 2
)

// User represents a registered shopper or administrator.
type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email" gorm:"uniqueIndex;type:varchar(250);not null"`
	Name            string    `json:"name" gorm:"type:varchar(250);not null"`
	Surname         string    `json:"surname" gorm:"type:varchar(250);not null"`
	Password        string    `json:"-" gorm:"type:varchar(250);not null"` // bcrypt hash, never serialized
	PermissionLevel int       `json:"permission_level" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`

	// A user owns their orders; orders are never deleted with the user.
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user may reach the admin surface.
func (u *User) IsAdmin() bool {
	return u.PermissionLevel > PermissionShopper
}
