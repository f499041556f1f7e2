package users

import (
	"context"

	"github.com/terminalchat/terminalchat/internal/models"
)

// Repository persists account records keyed by username.
type Repository interface {
	// Create inserts a new user. A taken username returns
	// common.ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername returns the user or common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Exists reports whether the username has an account record.
	Exists(ctx context.Context, username string) (bool, error)

	// Delete removes the user record. Deleting an absent user returns
	// common.ErrNotFound.
	Delete(ctx context.Context, username string) error

	// ListUsernames returns every username, sorted.
	ListUsernames(ctx context.Context) ([]string, error)
}
