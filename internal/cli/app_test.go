package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminalchat/terminalchat/internal/config"
	"github.com/terminalchat/terminalchat/internal/logging"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		AppDir:        dir,
		DatabasePath:  ":memory:",
		FilesDir:      filepath.Join(dir, "files"),
		SessionSecret: "test-secret",
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	app, err := NewApp(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	out := &bytes.Buffer{}
	app.out = out
	return app, out
}

// stubPassword makes every password prompt answer with pw.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(prompt string, w io.Writer) ([]byte, error) {
		return []byte(pw), nil
	}
}

// stubConfirm makes every confirmation answer with answer.
func stubConfirm(t *testing.T, answer bool) {
	t.Helper()
	orig := confirm
	t.Cleanup(func() { confirm = orig })
	confirm = func(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
		return answer, nil
	}
}

func signUpUser(t *testing.T, app *App, username string) {
	t.Helper()
	stubPassword(t, username+"-pw")
	require.NoError(t, app.Run(context.Background(), []string{"signup", username}))
}

func TestRun_NoCommandPrintsHelp(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, app.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "Usage: terminalchat")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, app.Run(context.Background(), []string{"frobnicate"}))
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestRun_ConfigFlagsAreNotCommands(t *testing.T) {
	app, out := newTestApp(t)
	signUpUser(t, app, "alice")
	out.Reset()

	require.NoError(t, app.Run(context.Background(), []string{"-a", "/tmp/tc", "whoami"}))
	assert.Contains(t, out.String(), "Logged in as alice.")
}

func TestSignUpLoginFlow(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	signUpUser(t, app, "alice")
	assert.Contains(t, out.String(), "Welcome, alice!")

	require.NoError(t, app.Run(ctx, []string{"logout"}))

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"whoami"}))
	assert.Contains(t, out.String(), "Not logged in.")

	stubPassword(t, "wrong")
	err := app.Run(ctx, []string{"login", "alice"})
	assert.ErrorContains(t, err, "wrong password")

	stubPassword(t, "alice-pw")
	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"login", "alice"}))
	assert.Contains(t, out.String(), "Logged in as alice.")
}

func TestSignUp_PasswordMismatch(t *testing.T) {
	app, _ := newTestApp(t)

	answers := [][]byte{[]byte("one"), []byte("two")}
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(prompt string, w io.Writer) ([]byte, error) {
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}

	err := app.Run(context.Background(), []string{"signup", "alice"})
	assert.ErrorContains(t, err, "passwords do not match")
}

func TestCommandsRequireLogin(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	for _, cmd := range [][]string{
		{"list"},
		{"users"},
		{"files"},
		{"blocked"},
		{"block", "bob"},
		{"send", "bob", "x"},
		{"message", "bob"},
		{"delete-account"},
	} {
		err := app.Run(ctx, cmd)
		assert.Error(t, err, "command %v must require login", cmd)
	}
}

func TestChatCommand(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	signUpUser(t, app, "bob")
	signUpUser(t, app, "alice") // alice stays logged in

	app.reader = bufio.NewReader(strings.NewReader("hi bob\n/quit\n"))
	require.NoError(t, app.Run(ctx, []string{"message", "bob"}))
	assert.Contains(t, out.String(), "chatting with bob")

	// bob sees the message with an unread marker
	stubPassword(t, "bob-pw")
	require.NoError(t, app.Run(ctx, []string{"login", "bob"}))
	out.Reset()
	app.reader = bufio.NewReader(strings.NewReader("/quit\n"))
	require.NoError(t, app.Run(ctx, []string{"chat", "alice"}))
	assert.Contains(t, out.String(), "alice: hi bob *")

	// marker clears once read
	out.Reset()
	app.reader = bufio.NewReader(strings.NewReader("/quit\n"))
	require.NoError(t, app.Run(ctx, []string{"chat", "alice"}))
	assert.Contains(t, out.String(), "alice: hi bob\n")
	assert.NotContains(t, out.String(), "hi bob *")
}

func TestChatCommand_UnknownPeer(t *testing.T) {
	app, _ := newTestApp(t)
	signUpUser(t, app, "alice")

	err := app.Run(context.Background(), []string{"message", "ghost"})
	assert.ErrorContains(t, err, `no account named "ghost"`)
}

func TestListCommand(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	signUpUser(t, app, "bob")
	signUpUser(t, app, "alice")

	app.reader = bufio.NewReader(strings.NewReader("hello there\n/quit\n"))
	require.NoError(t, app.Run(ctx, []string{"message", "bob"}))

	stubPassword(t, "bob-pw")
	require.NoError(t, app.Run(ctx, []string{"login", "bob"}))
	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"list"}))
	assert.Contains(t, out.String(), "alice")
	assert.Contains(t, out.String(), "hello there")
	assert.Contains(t, out.String(), "(1 unread)")
}

func TestBlockCommands(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	signUpUser(t, app, "bob")
	signUpUser(t, app, "alice")

	require.NoError(t, app.Run(ctx, []string{"block", "bob"}))
	assert.Contains(t, out.String(), "bob is now blocked.")

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"blocked"}))
	assert.Contains(t, out.String(), "bob")

	app.reader = bufio.NewReader(strings.NewReader("hi?\n"))
	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"message", "bob"}))
	assert.Contains(t, out.String(), "blocked")

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"unblock", "bob"}))
	assert.Contains(t, out.String(), "bob is no longer blocked.")

	err := app.Run(ctx, []string{"block", "alice"})
	assert.ErrorContains(t, err, "cannot block yourself")
}

func TestSendAndFilesCommands(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	signUpUser(t, app, "bob")
	signUpUser(t, app, "alice")

	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("some notes"), 0o600))

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"send", "bob", src}))
	assert.Contains(t, out.String(), "100.0%")
	assert.Contains(t, out.String(), "File sent to bob.")

	stubPassword(t, "bob-pw")
	require.NoError(t, app.Run(ctx, []string{"login", "bob"}))
	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"files"}))
	assert.Contains(t, out.String(), "notes.txt")
	assert.Contains(t, out.String(), "from alice")

	err := app.Run(ctx, []string{"send", "alice", filepath.Join(t.TempDir(), "missing")})
	assert.ErrorContains(t, err, "no file at")
}

func TestDeleteChatCommand(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	signUpUser(t, app, "bob")
	signUpUser(t, app, "alice")

	app.reader = bufio.NewReader(strings.NewReader("bye\n/quit\n"))
	require.NoError(t, app.Run(ctx, []string{"message", "bob"}))

	t.Run("declined", func(t *testing.T) {
		stubConfirm(t, false)
		out.Reset()
		require.NoError(t, app.Run(ctx, []string{"delete-chat", "bob"}))
		assert.Contains(t, out.String(), "Aborted.")
	})

	t.Run("confirmed", func(t *testing.T) {
		stubConfirm(t, true)
		out.Reset()
		require.NoError(t, app.Run(ctx, []string{"delete-chat", "bob"}))
		assert.Contains(t, out.String(), "Conversation with bob deleted.")

		out.Reset()
		require.NoError(t, app.Run(ctx, []string{"list"}))
		assert.Contains(t, out.String(), "No conversations yet.")
	})
}

func TestDeleteAccountCommand(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	signUpUser(t, app, "alice")
	stubConfirm(t, true)

	require.NoError(t, app.Run(ctx, []string{"delete-account"}))
	assert.Contains(t, out.String(), "Account alice deleted.")

	stubPassword(t, "alice-pw")
	err := app.Run(ctx, []string{"login", "alice"})
	assert.ErrorContains(t, err, `no account named "alice"`)
}
