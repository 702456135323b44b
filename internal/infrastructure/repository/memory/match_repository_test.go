package memory

import (
	"context"
	"testing"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
)

func soloMatch(groupID string, playedAt time.Time, winner, loser string) match.Match {
	return match.Match{
		ID:       winner + "-vs-" + loser + playedAt.Format("T15:04"),
		GroupID:  groupID,
		SeasonID: "s1",
		Type:     match.TypeSolo,
		Team1:    match.Team{Players: []string{winner}},
		Team2:    match.Team{Players: []string{loser}},
		Score1:   10,
		Score2:   6,
		PlayedAt: playedAt,
	}
}

func TestMatchRepository_AppendAssignsSeq(t *testing.T) {
	t.Parallel()

	repo := NewMatchRepository()
	base := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)

	first, err := repo.Append(context.Background(), soloMatch("g1", base, "alice", "bob"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	second, err := repo.Append(context.Background(), soloMatch("g1", base.Add(time.Hour), "bob", "alice"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if first.Seq != 1 || second.Seq != 2 {
		t.Fatalf("expected seqs 1 and 2, got %d and %d", first.Seq, second.Seq)
	}
}

func TestMatchRepository_ListsAreChronological(t *testing.T) {
	t.Parallel()

	repo := NewMatchRepository()
	base := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)

	// Appended out of played order on purpose.
	if _, err := repo.Append(context.Background(), soloMatch("g1", base.Add(2*time.Hour), "alice", "carol")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := repo.Append(context.Background(), soloMatch("g1", base, "alice", "bob")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := repo.Append(context.Background(), soloMatch("g2", base.Add(time.Hour), "erin", "frank")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	items, err := repo.ListByGroup(context.Background(), "g1")
	if err != nil {
		t.Fatalf("ListByGroup: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 matches for g1, got %d", len(items))
	}
	if !items[0].PlayedAt.Equal(base) {
		t.Fatalf("expected oldest first, got %v", items[0].PlayedAt)
	}

	byPlayer, err := repo.ListByPlayer(context.Background(), "g1", "carol")
	if err != nil {
		t.Fatalf("ListByPlayer: %v", err)
	}
	if len(byPlayer) != 1 {
		t.Fatalf("expected 1 match for carol, got %d", len(byPlayer))
	}
}

func TestMatchRepository_ListByGroupUntil(t *testing.T) {
	t.Parallel()

	repo := NewMatchRepository()
	base := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)

	if _, err := repo.Append(context.Background(), soloMatch("g1", base, "alice", "bob")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := repo.Append(context.Background(), soloMatch("g1", base.Add(time.Hour), "bob", "alice")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	items, err := repo.ListByGroupUntil(context.Background(), "g1", base)
	if err != nil {
		t.Fatalf("ListByGroupUntil: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected the cutoff to be inclusive with 1 match, got %d", len(items))
	}
}

func TestMatchRepository_Version(t *testing.T) {
	t.Parallel()

	repo := NewMatchRepository()
	base := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)

	version, err := repo.Version(context.Background(), "g1")
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != 0 {
		t.Fatalf("expected version 0 for empty ledger, got %d", version)
	}

	if _, err := repo.Append(context.Background(), soloMatch("g1", base, "alice", "bob")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := repo.Append(context.Background(), soloMatch("g2", base, "erin", "frank")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	g1, err := repo.Version(context.Background(), "g1")
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	g2, err := repo.Version(context.Background(), "g2")
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if g1 != 1 || g2 != 2 {
		t.Fatalf("expected per-group versions 1 and 2, got %d and %d", g1, g2)
	}
}
