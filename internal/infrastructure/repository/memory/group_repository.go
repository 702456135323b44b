package memory

import (
	"context"
	"sync"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
)

type GroupRepository struct {
	mu      sync.RWMutex
	items   map[string]group.Group
	orders  []string
	members []group.Membership
}

func NewGroupRepository(groups []group.Group) *GroupRepository {
	items := make(map[string]group.Group, len(groups))
	orders := make([]string, 0, len(groups))

	for _, g := range groups {
		items[g.ID] = g
		orders = append(orders, g.ID)
	}

	return &GroupRepository{
		items:  items,
		orders: orders,
	}
}

func (r *GroupRepository) Create(_ context.Context, g group.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[g.ID]; !exists {
		r.orders = append(r.orders, g.ID)
	}
	r.items[g.ID] = g

	return nil
}

func (r *GroupRepository) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[groupID]
	if !ok {
		return group.Group{}, false, nil
	}

	return g, true, nil
}

func (r *GroupRepository) GetByInviteCode(_ context.Context, inviteCode string) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if g := r.items[id]; g.InviteCode == inviteCode {
			return g, true, nil
		}
	}

	return group.Group{}, false, nil
}

func (r *GroupRepository) ListByUser(_ context.Context, userID string) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	joined := make(map[string]struct{})
	for _, m := range r.members {
		if m.UserID == userID {
			joined[m.GroupID] = struct{}{}
		}
	}

	out := make([]group.Group, 0, len(joined))
	for _, id := range r.orders {
		if _, ok := joined[id]; ok {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *GroupRepository) AddMember(_ context.Context, m group.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members {
		if existing.GroupID == m.GroupID && existing.UserID == m.UserID {
			return nil
		}
	}
	r.members = append(r.members, m)

	return nil
}

func (r *GroupRepository) GetMembership(_ context.Context, groupID, userID string) (group.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members {
		if m.GroupID == groupID && m.UserID == userID {
			return m, true, nil
		}
	}

	return group.Membership{}, false, nil
}

func (r *GroupRepository) ListMembers(_ context.Context, groupID string) ([]group.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Membership, 0)
	for _, m := range r.members {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}

	return out, nil
}
