package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/terminalchat/terminalchat/internal/common"
)

func (a *App) block(ctx context.Context, args []string) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: block <user>")
	}
	target := args[0]

	if err := a.blocking.Block(ctx, user, target); err != nil {
		switch {
		case errors.Is(err, common.ErrSelfBlock):
			return errors.New("you cannot block yourself")
		case errors.Is(err, common.ErrUnknownUser):
			return fmt.Errorf("no account named %q", target)
		}
		return err
	}

	fmt.Fprintf(a.out, "%s is now blocked.\n", target)
	return nil
}

func (a *App) unblock(ctx context.Context, args []string) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: unblock <user>")
	}
	target := args[0]

	if err := a.blocking.Unblock(ctx, user, target); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is no longer blocked.\n", target)
	return nil
}

func (a *App) listBlocked(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	blocked, err := a.blocking.Blocked(ctx, user)
	if err != nil {
		return err
	}
	if len(blocked) == 0 {
		fmt.Fprintln(a.out, "Nobody is blocked.")
		return nil
	}
	for _, name := range blocked {
		fmt.Fprintln(a.out, name)
	}
	return nil
}
