// Package cli implements the terminalchat command-line interface. Each
// invocation runs one command against the shared local store; the identity
// persisted by login/signup selects whose behalf commands run on.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/terminalchat/terminalchat/internal/config"
	"github.com/terminalchat/terminalchat/internal/flagx"
	"github.com/terminalchat/terminalchat/internal/logging"
	"github.com/terminalchat/terminalchat/internal/services"
	"github.com/terminalchat/terminalchat/internal/session"
	"github.com/terminalchat/terminalchat/internal/storage"
)

// configFlags are consumed by the config package; the dispatcher skips them
// when looking for the command word.
var configFlags = []string{"-a", "-d", "-f", "-l", "-c", "-config", "--config"}

type App struct {
	cfg *config.Config
	db  *sql.DB
	log logging.Logger

	identity  *services.Identity
	messaging *services.Messaging
	transfer  *services.Transfer
	blocking  *services.Blocking

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sessions := session.NewStore(cfg.SessionPath(), []byte(cfg.SessionSecret))

	return &App{
		cfg:       cfg,
		db:        db,
		log:       log,
		identity:  services.NewIdentity(db, sessions, cfg.FilesDir, log),
		messaging: services.NewMessaging(db, log),
		transfer:  services.NewTransfer(db, cfg.FilesDir, log),
		blocking:  services.NewBlocking(db, log),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run executes the command named by the first positional argument.
func (a *App) Run(ctx context.Context, args []string) error {
	words := flagx.StripArgs(args, configFlags)
	if len(words) == 0 {
		a.printHelp()
		return nil
	}
	cmd, rest := words[0], words[1:]

	switch cmd {
	case "signup":
		return a.signUp(ctx, rest)
	case "login":
		return a.logIn(ctx, rest)
	case "logout":
		return a.logOut(ctx)
	case "whoami", "status":
		return a.whoAmI(ctx)
	case "users":
		return a.listUsers(ctx)
	case "list":
		return a.listConversations(ctx)
	case "message", "chat":
		return a.chat(ctx, rest)
	case "send":
		return a.sendFile(ctx, rest)
	case "files":
		return a.listFiles(ctx)
	case "block":
		return a.block(ctx, rest)
	case "unblock":
		return a.unblock(ctx, rest)
	case "blocked":
		return a.listBlocked(ctx)
	case "delete-chat":
		return a.deleteChat(ctx, rest)
	case "delete-account":
		return a.deleteAccount(ctx)
	case "help":
		a.printHelp()
		return nil
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		a.printHelp()
		return nil
	}
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `Usage: terminalchat <command> [arguments]

Account:
  signup [username]        create an account and log in
  login [username]         log in
  logout                   log out
  whoami                   show the logged-in user
  delete-account           delete the account and all its data

Messaging:
  list                     list conversations, most recent first
  message <user>           open a conversation
  delete-chat <user>       delete a conversation
  users                    list other users

Files:
  send <user> <path>       send a file
  files                    list received files

Blocking:
  block <user>             block a user
  unblock <user>           unblock a user
  blocked                  list blocked users

Flags: -a <app dir>  -d <database>  -f <file area>  -l <log level>  -c <config.json>
`)
}

// currentUser resolves the logged-in username, failing with
// common.ErrNotLoggedIn when there is none.
func (a *App) currentUser() (string, error) {
	return requireLogin(a.identity)
}
