package models

import (
	"time"
)

// User defines the authentication account model based on the 'users' table.
// Identity is joined to the people table by email, mirroring how the
// pastoral program links login accounts to registered people.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"admin@providencia.app"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
