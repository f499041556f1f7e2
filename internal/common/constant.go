// Package common contains shared contract constants and sentinel errors used
// across terminalchat components.
package common

const (
	// MaxFileSize is the upper bound for a single file transfer (5 GiB).
	// Sources strictly larger than this are rejected.
	MaxFileSize int64 = 5 * 1024 * 1024 * 1024

	// CopyChunkSize is the buffer size used when copying file content, so
	// memory stays bounded regardless of file size (1 MiB).
	CopyChunkSize = 1024 * 1024
)
