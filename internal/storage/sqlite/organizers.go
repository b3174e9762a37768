package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/storage"
)

// CreateOrganizer inserts a new organizer account.
func (s *SQLiteStore) CreateOrganizer(ctx context.Context, o *models.Organizer) error {
	query := `
		INSERT INTO organizers (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		o.ID,
		o.Email,
		o.DisplayName,
		o.PasswordHash,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create organizer: %w", err)
	}

	return nil
}

// GetOrganizerByEmail retrieves an organizer by login address.
func (s *SQLiteStore) GetOrganizerByEmail(ctx context.Context, email string) (*models.Organizer, error) {
	return s.getOrganizer(ctx, "email", email)
}

// GetOrganizerByID retrieves an organizer by ID.
func (s *SQLiteStore) GetOrganizerByID(ctx context.Context, id string) (*models.Organizer, error) {
	return s.getOrganizer(ctx, "id", id)
}

// getOrganizer looks up by column, which must be a trusted column name.
func (s *SQLiteStore) getOrganizer(ctx context.Context, column, value string) (*models.Organizer, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM organizers
		WHERE ` + column + ` = ?
	`

	o := &models.Organizer{}
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&o.ID,
		&o.Email,
		&o.DisplayName,
		&o.PasswordHash,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("organizer: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organizer by %s: %w", column, err)
	}

	return o, nil
}
