package services

import (
	"context"
	"database/sql"

	"github.com/terminalchat/terminalchat/internal/common"
	"github.com/terminalchat/terminalchat/internal/logging"
	"github.com/terminalchat/terminalchat/internal/repositories/blocklist"
	"github.com/terminalchat/terminalchat/internal/repositories/users"
)

// Blocking manages per-user blocklists. Enforcement is symmetric and lives
// in the send paths; this service only edits and reads the sets.
type Blocking struct {
	db  *sql.DB
	log logging.Logger
}

func NewBlocking(db *sql.DB, log logging.Logger) *Blocking {
	return &Blocking{db: db, log: log}
}

// Block adds target to owner's blocklist. Blocking an already-blocked user
// is a no-op; blocking yourself or an unknown user is an error.
func (s *Blocking) Block(ctx context.Context, owner, target string) error {
	if owner == target {
		return common.ErrSelfBlock
	}

	exists, err := users.NewSQLiteRepository(s.db).Exists(ctx, target)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrUnknownUser
	}

	if err := blocklist.NewSQLiteRepository(s.db).Add(ctx, owner, target); err != nil {
		return err
	}
	s.log.Info(ctx, "user blocked", "owner", owner, "target", target)
	return nil
}

// Unblock lifts owner's block on target; no-op when no block exists.
func (s *Blocking) Unblock(ctx context.Context, owner, target string) error {
	return blocklist.NewSQLiteRepository(s.db).Remove(ctx, owner, target)
}

// Blocked returns the peers owner has blocked, sorted.
func (s *Blocking) Blocked(ctx context.Context, owner string) ([]string, error) {
	return blocklist.NewSQLiteRepository(s.db).ListBlocked(ctx, owner)
}

// IsBlockedPair reports whether either user has blocked the other.
func (s *Blocking) IsBlockedPair(ctx context.Context, a, b string) (bool, error) {
	return blocklist.NewSQLiteRepository(s.db).IsBlockedPair(ctx, a, b)
}
