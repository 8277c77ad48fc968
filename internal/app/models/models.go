package models

// RoleType defines the role tag recorded on a person
type RoleType string

const (
	RoleParticipant   RoleType = "participant"
	RoleAdministrator RoleType = "administrator"
)

// Valid reports whether the role is one of the known role tags.
func (r RoleType) Valid() bool {
	return r == RoleParticipant || r == RoleAdministrator
}
