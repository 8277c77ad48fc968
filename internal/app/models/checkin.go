package models

import (
	"time"
)

// Checkin defines an attendance record based on the 'checkins' table.
// EventID is nullable: the standalone kiosk flow records attendance without
// an event reference.
type Checkin struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	PersonID    int64     `json:"personId" db:"person_id" example:"1"`
	EventID     *int64    `json:"eventId,omitempty" db:"event_id" example:"1"`
	CheckedInAt time.Time `json:"checkedInAt" db:"checked_in_at"`
}

// CheckinWithPerson is a checkin row with its person join already resolved.
// Repositories always return the person fields populated, so callers never
// branch on a missing join shape.
type CheckinWithPerson struct {
	ID          int64     `json:"id"`
	CheckedInAt time.Time `json:"checkedInAt"`
	PersonID    int64     `json:"personId"`
	PersonName  string    `json:"personName"`
	PersonPhone string    `json:"personPhone"`
}
