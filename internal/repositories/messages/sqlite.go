// Package messages stores per-conversation logs in the embedded sqlite
// database. Append order is captured by an AUTOINCREMENT sequence, which is
// the ordering authority for reads; timestamps are informational.
package messages

import (
	"context"
	"fmt"
	"sort"
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

func (r *SQLiteRepository) Append(ctx context.Context, msg *models.Message) error {
	query := `INSERT INTO messages (id, conversation_key, sender, recipient, body, is_file, read, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.ConversationKey, msg.Sender, msg.Recipient, msg.Body,
		boolToInt(msg.IsFile), boolToInt(msg.Read),
		msg.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get message seq: %w", err)
	}
	msg.Seq = seq
	return nil
}

func (r *SQLiteRepository) ListByKey(ctx context.Context, key string) ([]models.Message, error) {
	query := `SELECT seq, id, conversation_key, sender, recipient, body, is_file, read, created_at
			FROM messages WHERE conversation_key = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	result := []models.Message{}
	for rows.Next() {
		var m models.Message
		var isFile, read int
		var createdAt string
		if err := rows.Scan(&m.Seq, &m.ID, &m.ConversationKey, &m.Sender, &m.Recipient,
			&m.Body, &isFile, &read, &createdAt); err != nil {
			return nil, err
		}
		m.IsFile = isFile != 0
		m.Read = read != 0
		if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse message timestamp: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkRead(ctx context.Context, key, reader string) (int64, error) {
	query := `UPDATE messages SET read = 1
			WHERE conversation_key = ? AND recipient = ? AND read = 0`
	result, err := r.db.ExecContext(ctx, query, key, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

func (r *SQLiteRepository) Summaries(ctx context.Context, user string) ([]models.ConversationSummary, error) {
	// One row per conversation: the tail message plus the unread count of
	// messages addressed to the user.
	query := `SELECT
			CASE WHEN m.sender = ? THEN m.recipient ELSE m.sender END AS peer,
			m.body, m.is_file, m.created_at,
			(SELECT COUNT(*) FROM messages u
				WHERE u.conversation_key = m.conversation_key
				  AND u.recipient = ? AND u.read = 0) AS unread
		FROM messages m
		WHERE m.seq IN (
			SELECT MAX(seq) FROM messages
			WHERE sender = ? OR recipient = ?
			GROUP BY conversation_key
		)`
	rows, err := r.db.QueryContext(ctx, query, user, user, user, user)
	if err != nil {
		return nil, fmt.Errorf("failed to select conversation summaries: %w", err)
	}
	defer rows.Close()

	result := []models.ConversationSummary{}
	for rows.Next() {
		var s models.ConversationSummary
		var isFile int
		var createdAt string
		if err := rows.Scan(&s.Peer, &s.LastMessageText, &isFile, &createdAt, &s.Unread); err != nil {
			return nil, err
		}
		s.LastIsFile = isFile != 0
		if s.LastMessageAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse summary timestamp: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest conversation first. For a fixed user, ordering ties by peer is
	// equivalent to ordering by conversation key.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].LastMessageAt.Equal(result[j].LastMessageAt) {
			return result[i].LastMessageAt.After(result[j].LastMessageAt)
		}
		return result[i].Peer < result[j].Peer
	})
	return result, nil
}

func (r *SQLiteRepository) DeleteByKey(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE conversation_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteForUser(ctx context.Context, username string) error {
	query := `DELETE FROM messages WHERE sender = ? OR recipient = ?`
	if _, err := r.db.ExecContext(ctx, query, username, username); err != nil {
		return fmt.Errorf("failed to delete user conversations: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
