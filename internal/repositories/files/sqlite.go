// Package files stores file-transfer records in the embedded sqlite
// database. File content itself lives in per-owner directories on disk.
package files

import (
	"context"
	"fmt"
	"time"

	"github.com/terminalchat/terminalchat/internal/dbx"
	"github.com/terminalchat/terminalchat/internal/models"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, record *models.FileRecord) error {
	query := `INSERT INTO files (id, owner, sender, original_name, size, stored_path, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.Owner, record.Sender, record.OriginalName,
		record.Size, record.StoredPath, record.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert file record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, owner string) ([]models.FileRecord, error) {
	query := `SELECT id, owner, sender, original_name, size, stored_path, created_at
			FROM files WHERE owner = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select file records: %w", err)
	}
	defer rows.Close()

	result := []models.FileRecord{}
	for rows.Next() {
		var rec models.FileRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Owner, &rec.Sender, &rec.OriginalName,
			&rec.Size, &rec.StoredPath, &createdAt); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse file timestamp: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByOwner(ctx context.Context, owner string) ([]string, error) {
	records, err := r.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE owner = ?`, owner); err != nil {
		return nil, fmt.Errorf("failed to delete file records: %w", err)
	}

	paths := make([]string, 0, len(records))
	for _, rec := range records {
		paths = append(paths, rec.StoredPath)
	}
	return paths, nil
}
