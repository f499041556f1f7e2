package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/terminalchat/terminalchat/internal/chatkey"
	"github.com/terminalchat/terminalchat/internal/common"
	"github.com/terminalchat/terminalchat/internal/dbx"
	"github.com/terminalchat/terminalchat/internal/logging"
	"github.com/terminalchat/terminalchat/internal/models"
	"github.com/terminalchat/terminalchat/internal/repositories/blocklist"
	"github.com/terminalchat/terminalchat/internal/repositories/messages"
	"github.com/terminalchat/terminalchat/internal/repositories/users"
)

// Messaging drives the per-conversation message logs and the derived
// conversation index.
type Messaging struct {
	db  *sql.DB
	log logging.Logger
}

func NewMessaging(db *sql.DB, log logging.Logger) *Messaging {
	return &Messaging{db: db, log: log}
}

// Send appends a text message to the canonical log for {sender, recipient}
// and returns the new message id. The recipient must exist
// (common.ErrUnknownRecipient) and neither side may have blocked the other
// (common.ErrRecipientBlocked). The existence check, block check and append
// run in one transaction, so concurrent sends never lose an append.
func (s *Messaging) Send(ctx context.Context, sender, recipient, text string) (string, error) {
	key, err := chatkey.Canonical(sender, recipient)
	if err != nil {
		return "", err
	}

	msg := &models.Message{
		ID:              uuid.NewString(),
		ConversationKey: key,
		Sender:          sender,
		Recipient:       recipient,
		Body:            text,
		CreatedAt:       time.Now().UTC(),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := users.NewSQLiteRepository(tx).Exists(ctx, recipient)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrUnknownRecipient
		}

		blocked, err := blocklist.NewSQLiteRepository(tx).IsBlockedPair(ctx, sender, recipient)
		if err != nil {
			return err
		}
		if blocked {
			return common.ErrRecipientBlocked
		}

		return messages.NewSQLiteRepository(tx).Append(ctx, msg)
	})
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

// History returns the full log between the two users in append order;
// empty when they have never exchanged anything.
func (s *Messaging) History(ctx context.Context, userA, userB string) ([]models.Message, error) {
	key, err := chatkey.Canonical(userA, userB)
	if err != nil {
		return nil, err
	}
	return messages.NewSQLiteRepository(s.db).ListByKey(ctx, key)
}

// MarkRead flags every message from peer addressed to reader as read.
// Call it when displaying a conversation so unread counts stay accurate.
func (s *Messaging) MarkRead(ctx context.Context, reader, peer string) error {
	key, err := chatkey.Canonical(reader, peer)
	if err != nil {
		return err
	}
	// single UPDATE, atomic on its own
	_, err = messages.NewSQLiteRepository(s.db).MarkRead(ctx, key, reader)
	return err
}

// Conversations lists the user's conversations, most recent first. It is a
// read-only projection: repeated calls on an unchanged store are identical.
func (s *Messaging) Conversations(ctx context.Context, user string) ([]models.ConversationSummary, error) {
	return messages.NewSQLiteRepository(s.db).Summaries(ctx, user)
}

// DeleteChat drops the whole log between the two users.
func (s *Messaging) DeleteChat(ctx context.Context, user, peer string) error {
	key, err := chatkey.Canonical(user, peer)
	if err != nil {
		return err
	}
	if err := messages.NewSQLiteRepository(s.db).DeleteByKey(ctx, key); err != nil {
		return err
	}
	s.log.Info(ctx, "conversation deleted", "key", key)
	return nil
}
