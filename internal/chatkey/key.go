// Package chatkey derives the canonical identifier for a conversation
// between two users. The key does not depend on who is sender and who is
// recipient, so both sides of an exchange always resolve to the same log.
package chatkey

import "github.com/terminalchat/terminalchat/internal/common"

// Canonical returns the conversation key for the unordered pair {a, b}:
// the two usernames sorted lexicographically and joined with "_".
// A user cannot converse with themselves; equal arguments return
// common.ErrInvalidConversation.
func Canonical(a, b string) (string, error) {
	if a == b {
		return "", common.ErrInvalidConversation
	}
	if b < a {
		a, b = b, a
	}
	return a + "_" + b, nil
}
