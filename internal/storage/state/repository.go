// Package state persists per-repository panel preferences.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repository stores the last chosen view mode and branch override per
// repository path. It satisfies panel.StateStore.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Load returns the stored preferences for repoPath. A repository that was
// never saved yields empty values and no error.
func (r *Repository) Load(ctx context.Context, repoPath string) (mode, branchOverride string, err error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT view_mode, branch_override
		FROM panel_state
		WHERE repo_path = ?
	`, repoPath)
	if err := row.Scan(&mode, &branchOverride); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("load panel state: %w", err)
	}
	return mode, branchOverride, nil
}

// Save upserts the preferences for repoPath.
func (r *Repository) Save(ctx context.Context, repoPath, mode, branchOverride string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO panel_state (repo_path, view_mode, branch_override, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(repo_path) DO UPDATE SET
			view_mode = excluded.view_mode,
			branch_override = excluded.branch_override,
			updated_at = excluded.updated_at
	`, repoPath, mode, branchOverride, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save panel state: %w", err)
	}
	return nil
}
