package memory

import (
	"context"
	"sync"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
)

// MatchRepository is an append-only ledger. Seq is assigned on append and is
// strictly increasing across all groups; entries are never mutated.
type MatchRepository struct {
	mu      sync.RWMutex
	items   []match.Match
	lastSeq int64
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{}
}

func (r *MatchRepository) Append(_ context.Context, m match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastSeq++
	m.Seq = r.lastSeq
	r.items = append(r.items, m)

	return m, nil
}

func (r *MatchRepository) ListByGroup(_ context.Context, groupID string) ([]match.Match, error) {
	return r.list(func(m match.Match) bool {
		return m.GroupID == groupID
	}), nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, groupID, seasonID string) ([]match.Match, error) {
	return r.list(func(m match.Match) bool {
		return m.GroupID == groupID && m.SeasonID == seasonID
	}), nil
}

func (r *MatchRepository) ListByPlayer(_ context.Context, groupID, playerID string) ([]match.Match, error) {
	return r.list(func(m match.Match) bool {
		return m.GroupID == groupID && m.Involves(playerID)
	}), nil
}

func (r *MatchRepository) ListByGroupUntil(_ context.Context, groupID string, cutoff time.Time) ([]match.Match, error) {
	return r.list(func(m match.Match) bool {
		return m.GroupID == groupID && !m.PlayedAt.After(cutoff)
	}), nil
}

func (r *MatchRepository) CountByPlayer(_ context.Context, groupID, playerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.items {
		if m.GroupID == groupID && m.Involves(playerID) {
			count++
		}
	}

	return count, nil
}

// Version identifies the group ledger's state for cache keys. Any append to
// the group moves it forward.
func (r *MatchRepository) Version(_ context.Context, groupID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var version int64
	for _, m := range r.items {
		if m.GroupID == groupID && m.Seq > version {
			version = m.Seq
		}
	}

	return version, nil
}

func (r *MatchRepository) list(keep func(match.Match) bool) []match.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if keep(m) {
			out = append(out, m)
		}
	}
	match.SortChronological(out)

	return out
}
