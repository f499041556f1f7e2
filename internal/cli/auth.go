package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/terminalchat/terminalchat/internal/common"
	"github.com/terminalchat/terminalchat/internal/services"
)

// Input helpers are indirected so tests can swap them out.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

func requireLogin(identity *services.Identity) (string, error) {
	user, err := identity.CurrentUser()
	if err != nil {
		return "", err
	}
	if user == "" {
		return "", common.ErrNotLoggedIn
	}
	return user, nil
}

func (a *App) signUp(ctx context.Context, args []string) error {
	username, err := a.usernameArg(args)
	if err != nil {
		return err
	}

	password, err := getPassword("Choose a password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := getPassword("Repeat the password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if !bytes.Equal(password, repeat) {
		return errors.New("passwords do not match")
	}

	if err := a.identity.SignUp(ctx, username, string(password)); err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return fmt.Errorf("username %q is taken", username)
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! You are now logged in.\n", username)
	return nil
}

func (a *App) logIn(ctx context.Context, args []string) error {
	username, err := a.usernameArg(args)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.identity.Login(ctx, username, string(password)); err != nil {
		switch {
		case errors.Is(err, common.ErrUnknownUser):
			return fmt.Errorf("no account named %q", username)
		case errors.Is(err, common.ErrWrongPassword):
			return errors.New("wrong password")
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s.\n", username)
	return nil
}

func (a *App) logOut(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) whoAmI(ctx context.Context) error {
	user, err := a.identity.CurrentUser()
	if err != nil {
		return err
	}
	if user == "" {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", user)
	return nil
}

func (a *App) listUsers(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	names, err := a.identity.ListUsers(ctx, user)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(a.out, "No other users yet.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(a.out, name)
	}
	return nil
}

func (a *App) deleteAccount(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader,
		fmt.Sprintf("Delete account %q with all its messages and files? This cannot be undone.", user),
		a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Aborted.")
		return nil
	}

	if err := a.identity.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account %s deleted.\n", user)
	return nil
}

// usernameArg takes the username from args or prompts for it.
func (a *App) usernameArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, "Username", a.out)
}
