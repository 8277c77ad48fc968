package dto

import "time"

// CreateEventRequest represents an admin creating an event
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=2,max=200"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate" binding:"required"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity" binding:"omitempty,min=0"`
}

// UpdateEventRequest represents an admin updating an event
type UpdateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=2,max=200"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate" binding:"required"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity" binding:"omitempty,min=0"`
}

// EventResponse represents an event record
type EventResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	EventDate    time.Time `json:"eventDate"`
	Location     string    `json:"location,omitempty"`
	Capacity     int       `json:"capacity"`
	CheckinCount int64     `json:"checkinCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EventListResponse represents an event listing
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int64           `json:"total"`
}
