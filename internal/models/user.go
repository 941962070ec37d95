package models

import "time"

// User roles. Admin-only routes require RoleAdmin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account in the marketplace.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag output for security
	FirstName string    `json:"firstName" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	LastName  string    `json:"lastName" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Role      string    `json:"role" gorm:"type:varchar(16)" validate:"omitempty,oneof=admin user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
