package models

import (
	"time"
)

// Company defines an affiliated business based on the 'companies' table.
// A company may reference at most one person as its owner; the reverse is
// not enforced.
type Company struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Vida Nova Contabilidade"`
	Description string    `json:"description" db:"description"`
	Segment     string    `json:"segment" db:"segment" example:"Contabilidade"`
	City        string    `json:"city" db:"city" example:"Curitiba"`
	Phone       string    `json:"phone" db:"phone" example:"41988887777"`
	Whatsapp    string    `json:"whatsapp" db:"whatsapp" example:"41988887777"`
	Email       string    `json:"email" db:"email" example:"contato@vidanova.com"`
	Website     string    `json:"website" db:"website"`
	Instagram   string    `json:"instagram" db:"instagram"`
	PersonID    *int64    `json:"personId,omitempty" db:"person_id"` // owner, if linked
	LogoURL     *string   `json:"logoUrl,omitempty" db:"logo_url"`
	Gallery     []string  `json:"gallery" db:"gallery"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// MaxGalleryImages caps the company gallery size.
const MaxGalleryImages = 6
