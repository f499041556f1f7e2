package models

import "time"

// ConversationSummary is a derived, never-persisted projection of one
// conversation for a given user: the peer, the latest message and how many
// messages addressed to the user are still unread.
type ConversationSummary struct {
	Peer            string
	LastMessageText string
	LastMessageAt   time.Time
	LastIsFile      bool
	Unread          int
}
