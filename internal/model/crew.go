package model

import "time"

// CrewMember is a member of train staff who can be assigned to
// journeys through the journey_crew join table.
type CrewMember struct {
	ID        uint64    `json:"id"`         // crew_members.id
	FirstName string    `json:"first_name"` // crew_members.first_name
	LastName  string    `json:"last_name"`  // crew_members.last_name
	CreatedAt time.Time `json:"created_at"` // crew_members.created_at
}

// FullName joins first and last name for display.
func (m CrewMember) FullName() string {
	return m.FirstName + " " + m.LastName
}
