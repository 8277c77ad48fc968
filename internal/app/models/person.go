package models

import (
	"time"
)

// Person defines a registered individual based on the 'people' table.
// Phone is stored as bare digits and is the lookup key for event check-in.
type Person struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Ana Beatriz da Silva"`
	Phone     string    `json:"phone" db:"phone" example:"41999998888"`
	Email     *string   `json:"email,omitempty" db:"email" example:"ana@email.com"`
	Role      RoleType  `json:"role" db:"role" example:"participant"`
	UserID    *int64    `json:"userId,omitempty" db:"user_id"` // login account, if one was created
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
