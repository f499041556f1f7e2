package services

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/terminalchat/terminalchat/internal/chatkey"
	"github.com/terminalchat/terminalchat/internal/common"
	"github.com/terminalchat/terminalchat/internal/dbx"
	"github.com/terminalchat/terminalchat/internal/filex"
	"github.com/terminalchat/terminalchat/internal/logging"
	"github.com/terminalchat/terminalchat/internal/models"
	"github.com/terminalchat/terminalchat/internal/repositories/blocklist"
	"github.com/terminalchat/terminalchat/internal/repositories/files"
	"github.com/terminalchat/terminalchat/internal/repositories/messages"
	"github.com/terminalchat/terminalchat/internal/repositories/users"
	"github.com/terminalchat/terminalchat/internal/sizex"
)

// Transfer copies files into recipients' file areas and records them in the
// conversation. A transfer record and its conversation entry are committed
// together, only after the content copy has fully completed.
type Transfer struct {
	db       *sql.DB
	filesDir string
	log      logging.Logger

	maxFileSize int64
	chunkSize   int
}

func NewTransfer(db *sql.DB, filesDir string, log logging.Logger) *Transfer {
	return &Transfer{
		db:          db,
		filesDir:    filesDir,
		log:         log,
		maxFileSize: common.MaxFileSize,
		chunkSize:   common.CopyChunkSize,
	}
}

// SendFile transfers the file at sourcePath from sender to recipient and
// returns the id of the stored record. The source must be a regular file no
// larger than the transfer limit, the recipient must exist, and the pair
// must not be blocked. The content lands in the recipient's file area under
// a unique name; an interrupted or failed transfer leaves neither content
// nor records behind.
func (s *Transfer) SendFile(ctx context.Context, sender, recipient, sourcePath string, progress filex.ProgressFunc) (string, error) {
	key, err := chatkey.Canonical(sender, recipient)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", common.ErrSourceNotFound
		}
		return "", fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return "", common.ErrSourceNotFound
	}
	if info.Size() > s.maxFileSize {
		return "", common.ErrFileTooLarge
	}

	if err := s.checkRecipient(ctx, sender, recipient); err != nil {
		return "", err
	}

	id := uuid.NewString()
	name := filepath.Base(sourcePath)
	destDir, err := filex.EnsureSubDir(s.filesDir, recipient)
	if err != nil {
		return "", err
	}
	destPath := filepath.Join(destDir, id+"_"+name)

	if err := s.copyContent(ctx, sourcePath, destPath, info.Size(), progress); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	record := &models.FileRecord{
		ID:           id,
		Owner:        recipient,
		Sender:       sender,
		OriginalName: name,
		Size:         info.Size(),
		StoredPath:   destPath,
		CreatedAt:    now,
	}
	msg := &models.Message{
		ID:              uuid.NewString(),
		ConversationKey: key,
		Sender:          sender,
		Recipient:       recipient,
		Body:            fmt.Sprintf("[FILE] %s (%s)", name, sizex.FormatSize(info.Size())),
		IsFile:          true,
		CreatedAt:       now,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := files.NewSQLiteRepository(tx).Create(ctx, record); err != nil {
			return err
		}
		return messages.NewSQLiteRepository(tx).Append(ctx, msg)
	})
	if err != nil {
		// keep content and records consistent: no record, no content
		if rmErr := os.Remove(destPath); rmErr != nil {
			s.log.Warn(ctx, "orphaned transfer content", "path", destPath, "error", rmErr)
		}
		return "", err
	}

	s.log.Info(ctx, "file transferred",
		"sender", sender, "recipient", recipient, "name", name, "size", info.Size())
	return id, nil
}

// ListFiles returns the records in owner's file area, newest first.
func (s *Transfer) ListFiles(ctx context.Context, owner string) ([]models.FileRecord, error) {
	return files.NewSQLiteRepository(s.db).ListByOwner(ctx, owner)
}

func (s *Transfer) checkRecipient(ctx context.Context, sender, recipient string) error {
	exists, err := users.NewSQLiteRepository(s.db).Exists(ctx, recipient)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrUnknownRecipient
	}

	blocked, err := blocklist.NewSQLiteRepository(s.db).IsBlockedPair(ctx, sender, recipient)
	if err != nil {
		return err
	}
	if blocked {
		return common.ErrRecipientBlocked
	}
	return nil
}

// copyContent writes the source to destPath via a temp file, so a partial
// copy never appears under the final name.
func (s *Transfer) copyContent(ctx context.Context, sourcePath, destPath string, total int64, progress filex.ProgressFunc) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	tmpPath := destPath + ".part"
	dst, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o660)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	_, copyErr := filex.CopyChunked(ctx, dst, src, s.chunkSize, total, progress)
	closeErr := dst.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			s.log.Warn(ctx, "partial transfer cleanup failed", "path", tmpPath, "error", rmErr)
		}
		return copyErr
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize transfer: %w", err)
	}
	return nil
}
