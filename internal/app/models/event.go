package models

import (
	"time"
)

// Event defines a pastoral gathering based on the 'events' table
type Event struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Encontro de Empreendedores"`
	Description string    `json:"description" db:"description"`
	EventDate   time.Time `json:"eventDate" db:"event_date" example:"2025-09-12T19:30:00Z"`
	Location    string    `json:"location" db:"location" example:"Salão Paroquial"`
	Capacity    int       `json:"capacity" db:"capacity" example:"120"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
