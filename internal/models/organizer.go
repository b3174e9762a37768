package models

import (
	"time"

	"github.com/google/uuid"
)

// Organizer is an account that creates groups and runs draws.
// Participants themselves never log in; they only receive share links.
type Organizer struct {
	// ID is the unique identifier for the organizer (UUID format).
	ID string

	// Email is the login address (unique).
	Email string

	// DisplayName is shown on shared result pages.
	DisplayName string

	// PasswordHash is the bcrypt hash of the organizer's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change to the account.
	UpdatedAt int64
}

// NewOrganizer builds an Organizer with a fresh ID and timestamps.
func NewOrganizer(email, displayName, passwordHash string) *Organizer {
	now := time.Now().Unix()
	return &Organizer{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
