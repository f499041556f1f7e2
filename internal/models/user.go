// Package models defines the records persisted by the terminalchat store.
package models

import "time"

// User is an account record. The username is unique, case-sensitive and
// immutable once created; the password credential is stored as a bcrypt hash.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
