package files

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminalchat/terminalchat/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE files (
  id TEXT PRIMARY KEY,
  owner TEXT NOT NULL,
  sender TEXT NOT NULL,
  original_name TEXT NOT NULL,
  size INTEGER NOT NULL,
  stored_path TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func newRecord(owner, sender, name string, size int64, at time.Time) *models.FileRecord {
	return &models.FileRecord{
		ID:           uuid.NewString(),
		Owner:        owner,
		Sender:       sender,
		OriginalName: name,
		Size:         size,
		StoredPath:   "/files/" + owner + "/" + name,
		CreatedAt:    at,
	}
}

func TestCreateAndListByOwner(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	older := newRecord("bob", "alice", "notes.txt", 42, base)
	newer := newRecord("bob", "alice", "photo.png", 1024, base.Add(time.Hour))
	other := newRecord("carol", "alice", "doc.pdf", 99, base)

	for _, rec := range []*models.FileRecord{older, newer, other} {
		require.NoError(t, r.Create(ctx, rec))
	}

	got, err := r.ListByOwner(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "photo.png", got[0].OriginalName, "newest first")
	assert.Equal(t, "notes.txt", got[1].OriginalName)
	assert.Equal(t, int64(1024), got[0].Size)
	assert.Equal(t, "alice", got[0].Sender)
}

func TestListByOwner_Empty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteByOwner_ReturnsStoredPaths(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, r.Create(ctx, newRecord("bob", "alice", "a.bin", 1, now)))
	require.NoError(t, r.Create(ctx, newRecord("bob", "carol", "b.bin", 2, now)))
	require.NoError(t, r.Create(ctx, newRecord("carol", "alice", "c.bin", 3, now)))

	paths, err := r.DeleteByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/files/bob/a.bin", "/files/bob/b.bin"}, paths)

	left, err := r.ListByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, left)

	kept, err := r.ListByOwner(ctx, "carol")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
