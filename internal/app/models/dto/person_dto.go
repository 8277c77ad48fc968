package dto

import "time"

// CreatePersonRequest represents an admin creating a person record
type CreatePersonRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=120"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Role  string `json:"role" binding:"omitempty,oneof=participant administrator"`
}

// UpdatePersonRequest represents an admin updating a person record
type UpdatePersonRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=120"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Role  string `json:"role" binding:"omitempty,oneof=participant administrator"`
}

// RegistrationRequest represents public self-registration from the signup form
type RegistrationRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=120"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

// PersonFilterRequest represents query filters for the people listing.
// EventIDs narrows to attendees of any of the given events; attendance=never
// selects people with no check-in at all.
type PersonFilterRequest struct {
	Search     string  `form:"search"`
	Role       string  `form:"role" binding:"omitempty,oneof=participant administrator"`
	Attendance string  `form:"attendance" binding:"omitempty,oneof=attended never"`
	EventIDs   []int64 `form:"eventId" binding:"omitempty,dive,min=1"`
	Page       int     `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int     `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// PersonResponse represents a person record
type PersonResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	PhoneFormatted string    `json:"phoneFormatted"`
	Email          string    `json:"email,omitempty"`
	Role           string    `json:"role"`
	HasAccount     bool      `json:"hasAccount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PersonListResponse represents a paginated people listing
type PersonListResponse struct {
	People   []PersonResponse `json:"people"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// UpdateProfileRequest represents a participant editing their own record
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=120"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}
