package memory

import (
	"context"
	"sync"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[string]season.Season
	orders []string
	now    func() time.Time
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	orders := make([]string, 0, len(seasons))

	for _, s := range seasons {
		items[s.ID] = s
		orders = append(orders, s.ID)
	}

	return &SeasonRepository{
		items:  items,
		orders: orders,
		now:    time.Now,
	}
}

func (r *SeasonRepository) Create(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[s.ID]; !exists {
		r.orders = append(r.orders, s.ID)
	}
	r.items[s.ID] = s

	return nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}

	return s, true, nil
}

func (r *SeasonRepository) ListByGroup(_ context.Context, groupID string) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0)
	for _, id := range r.orders {
		if s := r.items[id]; s.GroupID == groupID {
			out = append(out, s)
		}
	}

	return out, nil
}

func (r *SeasonRepository) GetActiveByGroup(_ context.Context, groupID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if s := r.items[id]; s.GroupID == groupID && s.IsActive {
			return s, true, nil
		}
	}

	return season.Season{}, false, nil
}

// SetActive activates one season and archives the group's previously active
// ones.
func (r *SeasonRepository) SetActive(_ context.Context, groupID, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	for _, id := range r.orders {
		s := r.items[id]
		if s.GroupID != groupID {
			continue
		}
		switch {
		case s.ID == seasonID:
			s.IsActive = true
			s.ArchivedAt = nil
		case s.IsActive:
			s.IsActive = false
			archivedAt := now
			s.ArchivedAt = &archivedAt
		}
		r.items[id] = s
	}

	return nil
}
