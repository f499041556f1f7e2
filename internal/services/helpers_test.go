package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terminalchat/terminalchat/internal/logging"
	"github.com/terminalchat/terminalchat/internal/session"
	"github.com/terminalchat/terminalchat/internal/storage"
)

type testEnv struct {
	db       *sql.DB
	sessions *session.Store
	filesDir string
	log      logging.Logger

	identity  *Identity
	messaging *Messaging
	transfer  *Transfer
	blocking  *Blocking
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dir := t.TempDir()
	sessions := session.NewStore(filepath.Join(dir, "session"), []byte("test-secret"))
	filesDir := filepath.Join(dir, "files")
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &testEnv{
		db:        db,
		sessions:  sessions,
		filesDir:  filesDir,
		log:       log,
		identity:  NewIdentity(db, sessions, filesDir, log),
		messaging: NewMessaging(db, log),
		transfer:  NewTransfer(db, filesDir, log),
		blocking:  NewBlocking(db, log),
	}
}

func signUp(t *testing.T, env *testEnv, usernames ...string) {
	t.Helper()
	for _, u := range usernames {
		require.NoError(t, env.identity.SignUp(context.Background(), u, u+"-password"))
	}
}
