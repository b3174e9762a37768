package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/storage"
)

// AddExclusion forbids giver → receiver within a group.
func (s *SQLiteStore) AddExclusion(ctx context.Context, groupID, giver, receiver string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := groupExists(ctx, tx, groupID); err != nil {
		return err
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM exclusions WHERE group_id = ? AND giver = ? AND receiver = ?",
		groupID, giver, receiver,
	).Scan(&exists)
	if err == nil {
		return fmt.Errorf("exclusion %s → %s: %w", giver, receiver, storage.ErrDuplicate)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check exclusion existence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO exclusions (group_id, giver, receiver, position)
		 VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM exclusions WHERE group_id = ?))`,
		groupID, giver, receiver, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exclusion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveExclusion lifts giver → receiver.
func (s *SQLiteStore) RemoveExclusion(ctx context.Context, groupID, giver, receiver string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM exclusions WHERE group_id = ? AND giver = ? AND receiver = ?",
		groupID, giver, receiver,
	)
	if err != nil {
		return fmt.Errorf("failed to delete exclusion: %w", err)
	}
	return requireAffected(result, fmt.Sprintf("exclusion %s → %s", giver, receiver))
}

// GetHistory loads every exclusion of a group.
func (s *SQLiteStore) GetHistory(ctx context.Context, groupID string) (models.History, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT giver, receiver FROM exclusions WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	history := models.History{}
	for rows.Next() {
		var giver, receiver string
		if err := rows.Scan(&giver, &receiver); err != nil {
			return nil, fmt.Errorf("failed to scan exclusion: %w", err)
		}
		history[giver] = append(history[giver], receiver)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exclusions: %w", err)
	}

	return history, nil
}
