package messages

import (
	"context"

	"github.com/terminalchat/terminalchat/internal/models"
)

// Repository persists the append-only conversation logs.
type Repository interface {
	// Append inserts a message at the tail of its conversation log and
	// fills in the store-assigned Seq.
	Append(ctx context.Context, msg *models.Message) error

	// ListByKey returns a conversation's messages in append order. A
	// conversation with no prior exchange yields an empty slice.
	ListByKey(ctx context.Context, key string) ([]models.Message, error)

	// MarkRead flips every unread message addressed to reader inside the
	// conversation and reports how many rows changed. Idempotent.
	MarkRead(ctx context.Context, key, reader string) (int64, error)

	// Summaries projects one ConversationSummary per conversation the user
	// participates in, ordered by last message time descending (ties by
	// peer ascending). Read-only.
	Summaries(ctx context.Context, user string) ([]models.ConversationSummary, error)

	// DeleteByKey removes one conversation's entire log.
	DeleteByKey(ctx context.Context, key string) error

	// DeleteForUser removes every log the user participates in.
	DeleteForUser(ctx context.Context, username string) error
}
