package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/player"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/season"
)

type stubGroupRepository struct {
	groups      []group.Group
	memberships []group.Membership
}

func (r *stubGroupRepository) Create(_ context.Context, g group.Group) error {
	r.groups = append(r.groups, g)
	return nil
}

func (r *stubGroupRepository) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	for _, g := range r.groups {
		if g.ID == groupID {
			return g, true, nil
		}
	}
	return group.Group{}, false, nil
}

func (r *stubGroupRepository) GetByInviteCode(_ context.Context, inviteCode string) (group.Group, bool, error) {
	for _, g := range r.groups {
		if g.InviteCode == inviteCode {
			return g, true, nil
		}
	}
	return group.Group{}, false, nil
}

func (r *stubGroupRepository) ListByUser(_ context.Context, userID string) ([]group.Group, error) {
	var out []group.Group
	for _, m := range r.memberships {
		if m.UserID != userID {
			continue
		}
		for _, g := range r.groups {
			if g.ID == m.GroupID {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (r *stubGroupRepository) AddMember(_ context.Context, m group.Membership) error {
	r.memberships = append(r.memberships, m)
	return nil
}

func (r *stubGroupRepository) GetMembership(_ context.Context, groupID, userID string) (group.Membership, bool, error) {
	for _, m := range r.memberships {
		if m.GroupID == groupID && m.UserID == userID {
			return m, true, nil
		}
	}
	return group.Membership{}, false, nil
}

func (r *stubGroupRepository) ListMembers(_ context.Context, groupID string) ([]group.Membership, error) {
	var out []group.Membership
	for _, m := range r.memberships {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}

type stubSeasonRepository struct {
	items []season.Season
}

func (r *stubSeasonRepository) Create(_ context.Context, s season.Season) error {
	r.items = append(r.items, s)
	return nil
}

func (r *stubSeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	for _, s := range r.items {
		if s.ID == seasonID {
			return s, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *stubSeasonRepository) ListByGroup(_ context.Context, groupID string) ([]season.Season, error) {
	var out []season.Season
	for _, s := range r.items {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSeasonRepository) GetActiveByGroup(_ context.Context, groupID string) (season.Season, bool, error) {
	for _, s := range r.items {
		if s.GroupID == groupID && s.IsActive {
			return s, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *stubSeasonRepository) SetActive(_ context.Context, groupID, seasonID string) error {
	for i := range r.items {
		if r.items[i].GroupID == groupID {
			r.items[i].IsActive = r.items[i].ID == seasonID
		}
	}
	return nil
}

type stubPlayerRepository struct {
	items []player.Player
}

func (r *stubPlayerRepository) Create(_ context.Context, p player.Player) error {
	r.items = append(r.items, p)
	return nil
}

func (r *stubPlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	for _, p := range r.items {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *stubPlayerRepository) GetByIDs(_ context.Context, groupID string, playerIDs []string) ([]player.Player, error) {
	var out []player.Player
	for _, id := range playerIDs {
		for _, p := range r.items {
			if p.ID == id && p.GroupID == groupID {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *stubPlayerRepository) ListByGroup(_ context.Context, groupID string) ([]player.Player, error) {
	var out []player.Player
	for _, p := range r.items {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPlayerRepository) Delete(_ context.Context, playerID string) error {
	for i, p := range r.items {
		if p.ID == playerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type stubMatchRepository struct {
	items   []match.Match
	nextSeq int64
}

func (r *stubMatchRepository) Append(_ context.Context, m match.Match) (match.Match, error) {
	r.nextSeq++
	m.Seq = r.nextSeq
	r.items = append(r.items, m)
	return m, nil
}

func (r *stubMatchRepository) ListByGroup(_ context.Context, groupID string) ([]match.Match, error) {
	return r.filter(func(m match.Match) bool { return m.GroupID == groupID }), nil
}

func (r *stubMatchRepository) ListBySeason(_ context.Context, groupID, seasonID string) ([]match.Match, error) {
	return r.filter(func(m match.Match) bool {
		return m.GroupID == groupID && m.SeasonID == seasonID
	}), nil
}

func (r *stubMatchRepository) ListByPlayer(_ context.Context, groupID, playerID string) ([]match.Match, error) {
	return r.filter(func(m match.Match) bool {
		return m.GroupID == groupID && m.Involves(playerID)
	}), nil
}

func (r *stubMatchRepository) ListByGroupUntil(_ context.Context, groupID string, cutoff time.Time) ([]match.Match, error) {
	return r.filter(func(m match.Match) bool {
		return m.GroupID == groupID && !m.PlayedAt.After(cutoff)
	}), nil
}

func (r *stubMatchRepository) CountByPlayer(_ context.Context, groupID, playerID string) (int, error) {
	return len(r.filter(func(m match.Match) bool {
		return m.GroupID == groupID && m.Involves(playerID)
	})), nil
}

func (r *stubMatchRepository) Version(_ context.Context, groupID string) (int64, error) {
	var version int64
	for _, m := range r.items {
		if m.GroupID == groupID && m.Seq > version {
			version = m.Seq
		}
	}
	return version, nil
}

func (r *stubMatchRepository) filter(keep func(match.Match) bool) []match.Match {
	var out []match.Match
	for _, m := range r.items {
		if keep(m) {
			out = append(out, m)
		}
	}
	match.SortChronological(out)
	return out
}

type stubIDGenerator struct {
	n int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

func (g *stubIDGenerator) NewInviteCode() (string, error) {
	g.n++
	return fmt.Sprintf("CODE%04d", g.n), nil
}

// testWorld wires a group with one member, two seasons and four players so
// individual tests only add matches.
type testWorld struct {
	groups  *stubGroupRepository
	seasons *stubSeasonRepository
	players *stubPlayerRepository
	matches *stubMatchRepository
}

const (
	testUserID   = "user-1"
	testGroupID  = "g1"
	testSeasonID = "s1"
)

func newTestWorld() *testWorld {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	archivedAt := now.AddDate(0, -1, 0)

	return &testWorld{
		groups: &stubGroupRepository{
			groups: []group.Group{
				{ID: testGroupID, Name: "Office Foos", OwnerUserID: testUserID, InviteCode: "CODE0001", CreatedAt: now},
			},
			memberships: []group.Membership{
				{GroupID: testGroupID, UserID: testUserID, JoinedAt: now},
			},
		},
		seasons: &stubSeasonRepository{
			items: []season.Season{
				{ID: "s0", GroupID: testGroupID, Name: "Season 0", IsActive: false, StartedAt: now.AddDate(0, -2, 0), ArchivedAt: &archivedAt},
				{ID: testSeasonID, GroupID: testGroupID, Name: "Season 1", IsActive: true, StartedAt: now},
			},
		},
		players: &stubPlayerRepository{
			items: []player.Player{
				{ID: "alice", GroupID: testGroupID, DisplayName: "Alice", CreatedAt: now},
				{ID: "bob", GroupID: testGroupID, DisplayName: "Bob", CreatedAt: now},
				{ID: "carol", GroupID: testGroupID, DisplayName: "Carol", CreatedAt: now},
				{ID: "dave", GroupID: testGroupID, DisplayName: "Dave", CreatedAt: now},
			},
		},
		matches: &stubMatchRepository{},
	}
}

func testWorldSecondGroup() group.Group {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return group.Group{ID: "g2", Name: "Second Group", OwnerUserID: testUserID, InviteCode: "CODE0002", CreatedAt: now}
}

func testWorldSecondMembership() group.Membership {
	return group.Membership{GroupID: "g2", UserID: testUserID, JoinedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (w *testWorld) addSolo(seq int64, winner, loser string, score1, score2 int) match.Match {
	m := match.Match{
		ID:       fmt.Sprintf("m%d", seq),
		GroupID:  testGroupID,
		SeasonID: testSeasonID,
		Type:     match.TypeSolo,
		Team1:    match.Team{Players: []string{winner}},
		Team2:    match.Team{Players: []string{loser}},
		Score1:   score1,
		Score2:   score2,
		PlayedAt: time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC).Add(time.Duration(seq) * time.Hour),
		Seq:      seq,
	}
	w.matches.items = append(w.matches.items, m)
	if seq > w.matches.nextSeq {
		w.matches.nextSeq = seq
	}
	return m
}

func (w *testWorld) addDuo(seq int64, team1, team2 [2]string, score1, score2 int) match.Match {
	m := match.Match{
		ID:       fmt.Sprintf("m%d", seq),
		GroupID:  testGroupID,
		SeasonID: testSeasonID,
		Type:     match.TypeDuo,
		Team1:    match.Team{Players: team1[:]},
		Team2:    match.Team{Players: team2[:]},
		Score1:   score1,
		Score2:   score2,
		PlayedAt: time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC).Add(time.Duration(seq) * time.Hour),
		Seq:      seq,
	}
	w.matches.items = append(w.matches.items, m)
	if seq > w.matches.nextSeq {
		w.matches.nextSeq = seq
	}
	return m
}
