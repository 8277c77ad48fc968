package dto

import "time"

// CheckinRequest represents a kiosk check-in attempt by phone number
type CheckinRequest struct {
	Phone   string `json:"phone" binding:"required"`
	EventID *int64 `json:"eventId" binding:"omitempty,min=1"`
}

// CheckinResponse represents a successful check-in
type CheckinResponse struct {
	ID          int64     `json:"id"`
	PersonID    int64     `json:"personId"`
	PersonName  string    `json:"personName"`
	EventID     *int64    `json:"eventId,omitempty"`
	CheckedInAt time.Time `json:"checkedInAt"`
}

// CheckinNotFoundResponse is returned when the phone has no matching
// person; the kiosk redirects to the registration form with the phone
// pre-filled.
type CheckinNotFoundResponse struct {
	Phone            string `json:"phone"`
	RegistrationPath string `json:"registrationPath"`
}

// CheckinListItem represents one attendance row in an event's list
type CheckinListItem struct {
	ID          int64     `json:"id"`
	CheckedInAt time.Time `json:"checkedInAt"`
	PersonID    int64     `json:"personId"`
	PersonName  string    `json:"personName"`
	PersonPhone string    `json:"personPhone"`
}

// CheckinListResponse represents an event's attendance listing
type CheckinListResponse struct {
	Checkins []CheckinListItem `json:"checkins"`
	Total    int64             `json:"total"`
}
