// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/secretsanta/internal/models"
)

var (
	// ErrNotFound is wrapped by every lookup that finds no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is wrapped when inserting a member or exclusion that
	// already exists.
	ErrDuplicate = errors.New("already exists")
)

// Store defines the persistence operations the service layer needs.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	GroupStore
	HistoryStore
	EventStore
	OrganizerStore

	// Close releases any resources held by the store.
	Close() error
}

// GroupStore persists rosters.
type GroupStore interface {
	// CreateGroup persists a new group with its initial members.
	// ID and CreatedAt are populated by the store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members in insertion order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns the groups owned by ownerID, newest first.
	ListGroups(ctx context.Context, ownerID string) ([]*models.Group, error)

	// DeleteGroup removes a group with its members, history and events.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember appends a participant to the roster.
	// Returns ErrDuplicate if the name is already taken.
	AddMember(ctx context.Context, groupID string, member models.Participant) error

	// RemoveMember removes a participant and, in the same transaction, every
	// exclusion naming them as giver or receiver.
	RemoveMember(ctx context.Context, groupID, name string) error
}

// HistoryStore persists the forbidden-pair registry of each group.
type HistoryStore interface {
	// AddExclusion forbids giver → receiver. Returns ErrDuplicate if it is
	// already forbidden.
	AddExclusion(ctx context.Context, groupID, giver, receiver string) error

	// RemoveExclusion lifts giver → receiver. Returns ErrNotFound if it was
	// not forbidden.
	RemoveExclusion(ctx context.Context, groupID, giver, receiver string) error

	// GetHistory returns the group's exclusions. Givers with no exclusions
	// are absent from the map.
	GetHistory(ctx context.Context, groupID string) (models.History, error)
}

// EventStore persists generated assignment sets.
type EventStore interface {
	// CreateEvent persists a draw. ID and CreatedAt are populated by the
	// store when empty.
	CreateEvent(ctx context.Context, event *models.Event) error

	// GetEvent retrieves an event with its pairs in giver order.
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	// ListEvents returns the events of a group, newest first, without pairs.
	ListEvents(ctx context.Context, groupID string) ([]*models.Event, error)
}

// OrganizerStore persists organizer accounts.
type OrganizerStore interface {
	CreateOrganizer(ctx context.Context, organizer *models.Organizer) error
	GetOrganizerByEmail(ctx context.Context, email string) (*models.Organizer, error)
	GetOrganizerByID(ctx context.Context, id string) (*models.Organizer, error)
}
