package match

import (
	"context"
	"time"
)

// Repository is the append-only ledger store. List results are always
// chronological (played_at asc, seq asc); there is no update or delete.
type Repository interface {
	// Append stores the match, assigns its insertion sequence and returns
	// the stored entry.
	Append(ctx context.Context, m Match) (Match, error)
	ListByGroup(ctx context.Context, groupID string) ([]Match, error)
	ListBySeason(ctx context.Context, groupID, seasonID string) ([]Match, error)
	ListByPlayer(ctx context.Context, groupID, playerID string) ([]Match, error)
	// ListByGroupUntil returns group matches with played_at <= cutoff.
	ListByGroupUntil(ctx context.Context, groupID string, cutoff time.Time) ([]Match, error)
	CountByPlayer(ctx context.Context, groupID, playerID string) (int, error)
	// Version returns a monotonically increasing ledger version for the
	// group, used to key memoized derived statistics.
	Version(ctx context.Context, groupID string) (int64, error)
}
