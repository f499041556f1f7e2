// Package services contains the business logic of the persistence engine:
// identity, messaging, file transfer and blocklist operations. Services own
// transaction boundaries; repositories never start transactions themselves.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/terminalchat/terminalchat/internal/common"
	"github.com/terminalchat/terminalchat/internal/dbx"
	"github.com/terminalchat/terminalchat/internal/logging"
	"github.com/terminalchat/terminalchat/internal/models"
	"github.com/terminalchat/terminalchat/internal/repositories/blocklist"
	"github.com/terminalchat/terminalchat/internal/repositories/files"
	"github.com/terminalchat/terminalchat/internal/repositories/messages"
	"github.com/terminalchat/terminalchat/internal/repositories/users"
	"github.com/terminalchat/terminalchat/internal/session"
)

// Identity manages accounts and the persisted login state.
type Identity struct {
	db       *sql.DB
	sessions *session.Store
	filesDir string
	log      logging.Logger
}

func NewIdentity(db *sql.DB, sessions *session.Store, filesDir string, log logging.Logger) *Identity {
	return &Identity{db: db, sessions: sessions, filesDir: filesDir, log: log}
}

// SignUp creates the account and logs it in. A taken username returns
// common.ErrDuplicateUsername.
func (s *Identity) SignUp(ctx context.Context, username, password string) error {
	if username == "" {
		return errors.New("username must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.NewSQLiteRepository(s.db).Create(ctx, user); err != nil {
		return err
	}

	if err := s.sessions.Save(username); err != nil {
		return err
	}
	s.log.Info(ctx, "account created", "username", username)
	return nil
}

// Login verifies the credential and persists the identity.
func (s *Identity) Login(ctx context.Context, username, password string) error {
	user, err := users.NewSQLiteRepository(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnknownUser
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return common.ErrWrongPassword
	}
	return s.sessions.Save(username)
}

// Logout clears the persisted identity; logging out twice is fine.
func (s *Identity) Logout(ctx context.Context) error {
	return s.sessions.Clear()
}

// CurrentUser returns the logged-in username, or "" when nobody is.
func (s *Identity) CurrentUser() (string, error) {
	return s.sessions.Current()
}

// DeleteAccount removes the logged-in user and everything keyed by them:
// the account record, every conversation they participate in, their
// blocklist entries (both directions) and their file area. The database
// cascade runs in a single transaction; the file-area directory is removed
// after the commit. Callers must confirm before invoking — this is not
// reversible.
func (s *Identity) DeleteAccount(ctx context.Context) error {
	username, err := s.sessions.Current()
	if err != nil {
		return err
	}
	if username == "" {
		return common.ErrNotLoggedIn
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := users.NewSQLiteRepository(tx).Delete(ctx, username); err != nil {
			return err
		}
		if err := messages.NewSQLiteRepository(tx).DeleteForUser(ctx, username); err != nil {
			return err
		}
		if err := blocklist.NewSQLiteRepository(tx).DeleteForUser(ctx, username); err != nil {
			return err
		}
		_, err := files.NewSQLiteRepository(tx).DeleteByOwner(ctx, username)
		return err
	})
	if err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(s.filesDir, username)); err != nil {
		s.log.Warn(ctx, "file area cleanup failed", "username", username, "error", err)
	}

	s.log.Info(ctx, "account deleted", "username", username)
	return s.sessions.Clear()
}

// ListUsers returns every username except the requester's own.
func (s *Identity) ListUsers(ctx context.Context, requester string) ([]string, error) {
	all, err := users.NewSQLiteRepository(s.db).ListUsernames(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(all))
	for _, name := range all {
		if name != requester {
			result = append(result, name)
		}
	}
	return result, nil
}

// UserExists reports whether the username has an account.
func (s *Identity) UserExists(ctx context.Context, username string) (bool, error) {
	return users.NewSQLiteRepository(s.db).Exists(ctx, username)
}
