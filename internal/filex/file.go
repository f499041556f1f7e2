// Package filex provides small filesystem helpers: directory setup and a
// bounded, progress-reporting copy used by file transfers.
package filex

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ProgressFunc is invoked after every copied chunk with the number of bytes
// written so far and the expected total.
type ProgressFunc func(copied, total int64)

// EnsureSubDir creates (if needed) and returns the directory name under parent.
func EnsureSubDir(parent, name string) (string, error) {
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// CopyChunked copies src to dst in chunkSize slices so memory use stays
// bounded regardless of input size. After each chunk the optional progress
// callback receives (copied, total). The copy stops with ctx.Err() as soon
// as the context is cancelled between chunks.
func CopyChunked(ctx context.Context, dst io.Writer, src io.Reader, chunkSize int, total int64, progress ProgressFunc) (int64, error) {
	buf := make([]byte, chunkSize)
	var copied int64

	for {
		if err := ctx.Err(); err != nil {
			return copied, err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			written, writeErr := dst.Write(buf[:n])
			copied += int64(written)
			if writeErr != nil {
				return copied, fmt.Errorf("write chunk: %w", writeErr)
			}
			if written < n {
				return copied, io.ErrShortWrite
			}
			if progress != nil {
				progress(copied, total)
			}
		}
		if readErr == io.EOF {
			return copied, nil
		}
		if readErr != nil {
			return copied, fmt.Errorf("read chunk: %w", readErr)
		}
	}
}
