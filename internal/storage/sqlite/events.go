package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/storage"
)

// CreateEvent persists a draw and its pairs.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	r := event.Record
	_, err = tx.ExecContext(ctx,
		"INSERT INTO events (id, group_id, title, date, max_amount, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, event.GroupID, r.Title, r.Date, string(r.MaxAmount), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	for i, p := range r.Results {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO event_pairs (event_id, position, giver, receiver) VALUES (?, ?, ?, ?)",
			event.ID, i, p.Giver, p.Receiver,
		)
		if err != nil {
			return fmt.Errorf("failed to insert pair: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetEvent retrieves an event with its pairs.
func (s *SQLiteStore) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event := &models.Event{}
	var maxAmount string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, title, date, max_amount, created_at FROM events WHERE id = ?",
		eventID,
	).Scan(&event.ID, &event.GroupID, &event.Record.Title, &event.Record.Date, &maxAmount, &event.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	event.Record.MaxAmount = models.Budget(maxAmount)

	rows, err := s.db.QueryContext(ctx,
		"SELECT giver, receiver FROM event_pairs WHERE event_id = ? ORDER BY position",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pairs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Pair
		if err := rows.Scan(&p.Giver, &p.Receiver); err != nil {
			return nil, fmt.Errorf("failed to scan pair: %w", err)
		}
		event.Record.Results = append(event.Record.Results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pairs: %w", err)
	}

	return event, nil
}

// ListEvents retrieves the events of a group without their pairs.
func (s *SQLiteStore) ListEvents(ctx context.Context, groupID string) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, title, date, max_amount, created_at
		 FROM events WHERE group_id = ? ORDER BY created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		var maxAmount string
		if err := rows.Scan(&event.ID, &event.GroupID, &event.Record.Title, &event.Record.Date, &maxAmount, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Record.MaxAmount = models.Budget(maxAmount)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}
