package common

import "errors"

// Callers should match these values with errors.Is.
var (
	// account errors
	ErrDuplicateUsername = errors.New("username already exists")

	// auth errors
	ErrUnknownUser   = errors.New("unknown user")
	ErrWrongPassword = errors.New("wrong password")
	ErrNotLoggedIn   = errors.New("not logged in")

	// messaging errors
	ErrUnknownRecipient    = errors.New("recipient does not exist")
	ErrRecipientBlocked    = errors.New("interaction between these users is blocked")
	ErrInvalidConversation = errors.New("a conversation needs two distinct users")

	// blocklist errors
	ErrSelfBlock = errors.New("cannot block yourself")

	// transfer errors
	ErrSourceNotFound = errors.New("source file not found")
	ErrFileTooLarge   = errors.New("file exceeds the maximum transfer size")

	// repository-level errors
	ErrNotFound = errors.New("not found")
)
