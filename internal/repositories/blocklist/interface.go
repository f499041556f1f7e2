package blocklist

import "context"

// Repository persists per-user sets of blocked peers. Enforcement is
// symmetric: a pair is blocked when either side has blocked the other.
type Repository interface {
	// Add records that owner blocked target. Blocking twice is a no-op.
	Add(ctx context.Context, owner, target string) error

	// Remove lifts owner's block on target; no-op when absent.
	Remove(ctx context.Context, owner, target string) error

	// IsBlockedPair reports whether either user has blocked the other.
	IsBlockedPair(ctx context.Context, a, b string) (bool, error)

	// ListBlocked returns the peers owner has blocked, sorted.
	ListBlocked(ctx context.Context, owner string) ([]string, error)

	// DeleteForUser removes every entry naming the user, as owner or target.
	DeleteForUser(ctx context.Context, username string) error
}
