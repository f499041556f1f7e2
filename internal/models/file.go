package models

import "time"

// FileRecord describes a completed file transfer stored in the recipient's
// file area. The record exists only after the content copy has fully
// finished; interrupted transfers leave no record behind.
type FileRecord struct {
	// ID is a globally unique, opaque identifier.
	ID string

	// Owner is the recipient whose file area holds the content.
	Owner string

	// Sender performed the transfer.
	Sender string

	OriginalName string
	Size         int64
	StoredPath   string
	CreatedAt    time.Time
}
