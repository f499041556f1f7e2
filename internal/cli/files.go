package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/terminalchat/terminalchat/internal/common"
	"github.com/terminalchat/terminalchat/internal/sizex"
)

func (a *App) sendFile(ctx context.Context, args []string) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: send <user> <path>")
	}
	recipient, path := args[0], args[1]

	_, err = a.transfer.SendFile(ctx, user, recipient, path, progressPrinter(a.out))
	fmt.Fprintln(a.out)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSourceNotFound):
			return fmt.Errorf("no file at %q", path)
		case errors.Is(err, common.ErrFileTooLarge):
			return fmt.Errorf("file exceeds the %s transfer limit", sizex.FormatSize(common.MaxFileSize))
		case errors.Is(err, common.ErrUnknownRecipient):
			return fmt.Errorf("no account named %q", recipient)
		case errors.Is(err, common.ErrRecipientBlocked):
			return errors.New("file not sent: interaction with this user is blocked")
		}
		return err
	}

	fmt.Fprintf(a.out, "File sent to %s.\n", recipient)
	return nil
}

func (a *App) listFiles(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	records, err := a.transfer.ListFiles(ctx, user)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No received files.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(a.out, "%-24s %10s  from %-16s %s\n",
			r.OriginalName, sizex.FormatSize(r.Size), r.Sender,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
