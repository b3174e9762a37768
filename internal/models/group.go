package models

import (
	"errors"
	"regexp"
)

// ErrInvalidPhone is returned when a participant phone number does not look
// like a phone number.
var ErrInvalidPhone = errors.New("invalid phone number")

var phonePattern = regexp.MustCompile(`^(\+\d{1,2}\s?)?(\(\d{3}\)|\d{3})[\s.-]?\d{3}[\s.-]?\d{4}$`)

// Participant is one member of a Secret Santa group.
type Participant struct {
	// Name identifies the participant within its group (case-sensitive).
	Name string `json:"name" yaml:"name"`

	// Phone is optional. When set it is where the giver's notification goes.
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// ValidatePhone accepts an empty phone or a North-American style number such
// as "+1 (555) 123-4567" or "555.123.4567".
func ValidatePhone(phone string) error {
	if phone == "" || phonePattern.MatchString(phone) {
		return nil
	}
	return ErrInvalidPhone
}

// Group represents a reusable participant roster owned by an organizer.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Family", "Office").
	Name string

	// OwnerID is the organizer who created the group.
	OwnerID string

	// Members is the roster in insertion order. The order is the giver
	// order used when drawing.
	Members []Participant

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Roster returns the member names in giver order.
func (g *Group) Roster() []string {
	names := make([]string, len(g.Members))
	for i, m := range g.Members {
		names[i] = m.Name
	}
	return names
}

// HasMember reports whether name is on the roster.
func (g *Group) HasMember(name string) bool {
	for _, m := range g.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Member returns the participant with the given name.
func (g *Group) Member(name string) (Participant, bool) {
	for _, m := range g.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Participant{}, false
}
