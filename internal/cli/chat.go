package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terminalchat/terminalchat/internal/common"
	"github.com/terminalchat/terminalchat/internal/models"
)

// chat opens the conversation with the named peer: it prints the history,
// marks the incoming side as read, then turns every typed line into a
// message until the user types /quit or closes the input.
func (a *App) chat(ctx context.Context, args []string) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: message <user>")
	}
	peer := args[0]

	exists, err := a.identity.UserExists(ctx, peer)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no account named %q", peer)
	}

	history, err := a.messaging.History(ctx, user, peer)
	if err != nil {
		return err
	}
	for _, m := range history {
		a.printMessage(user, m)
	}
	if err := a.messaging.MarkRead(ctx, user, peer); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "-- chatting with %s, type /quit to leave --\n", peer)
	for {
		line, err := getSimpleText(a.reader, user, a.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/q" {
			return nil
		}

		if _, err := a.messaging.Send(ctx, user, peer, line); err != nil {
			if errors.Is(err, common.ErrRecipientBlocked) {
				fmt.Fprintln(a.out, "Message not sent: interaction with this user is blocked.")
				return nil
			}
			return err
		}
	}
}

func (a *App) printMessage(viewer string, m models.Message) {
	marker := ""
	if m.Recipient == viewer && !m.Read {
		marker = " *"
	}
	fmt.Fprintf(a.out, "[%s] %s: %s%s\n",
		m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Sender, m.Body, marker)
}

func (a *App) listConversations(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	convs, err := a.messaging.Conversations(ctx, user)
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		fmt.Fprintln(a.out, "No conversations yet.")
		return nil
	}

	for _, c := range convs {
		unread := ""
		if c.Unread > 0 {
			unread = fmt.Sprintf(" (%d unread)", c.Unread)
		}
		fmt.Fprintf(a.out, "%-16s %s  %s%s\n",
			c.Peer, c.LastMessageAt.Local().Format("2006-01-02 15:04"), c.LastMessageText, unread)
	}
	return nil
}

func (a *App) deleteChat(ctx context.Context, args []string) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: delete-chat <user>")
	}
	peer := args[0]

	ok, err := confirm(a.reader,
		fmt.Sprintf("Delete the whole conversation with %q for both sides?", peer), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Aborted.")
		return nil
	}

	if err := a.messaging.DeleteChat(ctx, user, peer); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Conversation with %s deleted.\n", peer)
	return nil
}
