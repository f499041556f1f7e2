package models

import "time"

// Message is one entry of a conversation log. Messages are append-only and
// immutable except for the Read flag, which only ever transitions
// false -> true.
type Message struct {
	// ID is a globally unique, opaque identifier.
	ID string

	// ConversationKey is the canonical key of the log this message belongs to.
	ConversationKey string

	// Seq is the store-assigned append sequence inside the conversation
	// database. It is the ordering authority; timestamps are informational.
	Seq int64

	Sender    string
	Recipient string
	Body      string

	// IsFile marks transfer-completion messages ("[FILE] name (size)").
	IsFile bool

	// Read reports whether the recipient has seen the message.
	Read bool

	CreatedAt time.Time
}
