// Package blocklist stores blocked-peer entries in the embedded sqlite
// database.
package blocklist

import (
	"context"
	"fmt"
	"time"

	"github.com/terminalchat/terminalchat/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, owner, target string) error {
	query := `INSERT INTO blocklist (owner, blocked, created_at) VALUES (?, ?, ?)
			ON CONFLICT(owner, blocked) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, owner, target, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert blocklist entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, owner, target string) error {
	query := `DELETE FROM blocklist WHERE owner = ? AND blocked = ?`
	if _, err := r.db.ExecContext(ctx, query, owner, target); err != nil {
		return fmt.Errorf("failed to delete blocklist entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) IsBlockedPair(ctx context.Context, a, b string) (bool, error) {
	query := `SELECT EXISTS(
			SELECT 1 FROM blocklist
			WHERE (owner = ? AND blocked = ?) OR (owner = ? AND blocked = ?))`
	var blocked bool
	if err := r.db.QueryRowContext(ctx, query, a, b, b, a).Scan(&blocked); err != nil {
		return false, fmt.Errorf("failed to check blocklist: %w", err)
	}
	return blocked, nil
}

func (r *SQLiteRepository) ListBlocked(ctx context.Context, owner string) ([]string, error) {
	query := `SELECT blocked FROM blocklist WHERE owner = ? ORDER BY blocked`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select blocklist: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteForUser(ctx context.Context, username string) error {
	query := `DELETE FROM blocklist WHERE owner = ? OR blocked = ?`
	if _, err := r.db.ExecContext(ctx, query, username, username); err != nil {
		return fmt.Errorf("failed to delete blocklist entries: %w", err)
	}
	return nil
}
