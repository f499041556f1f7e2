package files

import (
	"context"

	"github.com/terminalchat/terminalchat/internal/models"
)

// Repository persists file-transfer records. A record is only created after
// the content copy has fully completed.
type Repository interface {
	// Create inserts a completed transfer record.
	Create(ctx context.Context, record *models.FileRecord) error

	// ListByOwner returns the records in an owner's file area, newest first.
	ListByOwner(ctx context.Context, owner string) ([]models.FileRecord, error)

	// DeleteByOwner removes every record in an owner's file area and
	// returns the stored paths of the removed content.
	DeleteByOwner(ctx context.Context, owner string) ([]string, error)
}
