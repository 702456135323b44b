package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/rating"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/cache"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/logging"
)

func newMatchService(w *testWorld) *MatchService {
	svc := NewMatchService(w.groups, w.seasons, w.players, w.matches, &stubIDGenerator{}, rating.DefaultConfig(), logging.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestMatchService_RecordMatch(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	svc := newMatchService(w)

	stored, err := svc.RecordMatch(context.Background(), testUserID, RecordMatchInput{
		GroupID:  testGroupID,
		SeasonID: testSeasonID,
		Type:     "1v1",
		Team1:    []string{"alice"},
		Team2:    []string{"bob"},
		Score1:   10,
		Score2:   4,
		PlayedAt: time.Date(2026, 1, 5, 19, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	if stored.Seq != 1 {
		t.Fatalf("expected seq 1, got %d", stored.Seq)
	}
	if stored.RecordedBy != testUserID {
		t.Fatalf("expected recorded_by %q, got %q", testUserID, stored.RecordedBy)
	}
	if len(stored.PlayerStats) != 2 {
		t.Fatalf("expected 2 player stats, got %d", len(stored.PlayerStats))
	}
	for _, ps := range stored.PlayerStats {
		if ps.RatingBefore != rating.DefaultBaseRating {
			t.Fatalf("player %s: expected base rating before, got %v", ps.PlayerID, ps.RatingBefore)
		}
		switch ps.PlayerID {
		case "alice":
			if ps.RatingAfter != 1216 {
				t.Fatalf("alice: expected 1216 after, got %v", ps.RatingAfter)
			}
		case "bob":
			if ps.RatingAfter != 1184 {
				t.Fatalf("bob: expected 1184 after, got %v", ps.RatingAfter)
			}
		default:
			t.Fatalf("unexpected player stat for %s", ps.PlayerID)
		}
	}
	if len(w.matches.items) != 1 {
		t.Fatalf("expected 1 stored match, got %d", len(w.matches.items))
	}
}

func TestMatchService_RecordMatch_DefaultsToActiveSeason(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	svc := newMatchService(w)

	stored, err := svc.RecordMatch(context.Background(), testUserID, RecordMatchInput{
		GroupID: testGroupID,
		Type:    "2v2",
		Team1:   []string{"alice", "bob"},
		Team2:   []string{"carol", "dave"},
		Score1:  10,
		Score2:  8,
	})
	if err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	if stored.SeasonID != testSeasonID {
		t.Fatalf("expected active season %q, got %q", testSeasonID, stored.SeasonID)
	}
	if stored.PlayedAt.IsZero() {
		t.Fatal("expected played_at to default to the clock")
	}
}

func TestMatchService_RecordMatch_ArchivedSeason(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	svc := newMatchService(w)

	_, err := svc.RecordMatch(context.Background(), testUserID, RecordMatchInput{
		GroupID:  testGroupID,
		SeasonID: "s0",
		Type:     "1v1",
		Team1:    []string{"alice"},
		Team2:    []string{"bob"},
		Score1:   10,
		Score2:   4,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(w.matches.items) != 0 {
		t.Fatal("archived-season match must not be appended")
	}
}

func TestMatchService_RecordMatch_UnknownPlayer(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	svc := newMatchService(w)

	_, err := svc.RecordMatch(context.Background(), testUserID, RecordMatchInput{
		GroupID:  testGroupID,
		SeasonID: testSeasonID,
		Type:     "1v1",
		Team1:    []string{"alice"},
		Team2:    []string{"ghost"},
		Score1:   10,
		Score2:   4,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_RecordMatch_OverlappingTeams(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	svc := newMatchService(w)

	_, err := svc.RecordMatch(context.Background(), testUserID, RecordMatchInput{
		GroupID:  testGroupID,
		SeasonID: testSeasonID,
		Type:     "1v1",
		Team1:    []string{"alice"},
		Team2:    []string{"alice"},
		Score1:   10,
		Score2:   4,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !errors.Is(err, match.ErrPlayerOverlap) {
		t.Fatalf("expected player overlap cause, got %v", err)
	}
}

func TestMatchService_RecordMatch_NonMember(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	svc := newMatchService(w)

	_, err := svc.RecordMatch(context.Background(), "stranger", RecordMatchInput{
		GroupID:  testGroupID,
		SeasonID: testSeasonID,
		Type:     "1v1",
		Team1:    []string{"alice"},
		Team2:    []string{"bob"},
		Score1:   10,
		Score2:   4,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestMatchService_RecordMatch_InvalidatesDerivedCache(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	svc := newMatchService(w)

	store := cache.NewStore(time.Minute)
	svc.SetCache(store)
	store.Set(context.Background(), derivedPrefix(testGroupID)+"ratings:v0", groupRatings{})
	store.Set(context.Background(), "derived:other:ratings:v0", groupRatings{})

	if _, err := svc.RecordMatch(context.Background(), testUserID, RecordMatchInput{
		GroupID:  testGroupID,
		SeasonID: testSeasonID,
		Type:     "1v1",
		Team1:    []string{"alice"},
		Team2:    []string{"bob"},
		Score1:   10,
		Score2:   4,
	}); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	if _, ok := store.Get(context.Background(), derivedPrefix(testGroupID)+"ratings:v0"); ok {
		t.Fatal("expected group's derived entries to be invalidated")
	}
	if _, ok := store.Get(context.Background(), "derived:other:ratings:v0"); !ok {
		t.Fatal("other groups' derived entries must survive")
	}
}

func TestMatchService_PlayerMatches(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	w.addSolo(2, "alice", "carol", 10, 6)
	w.addSolo(1, "alice", "bob", 10, 4)
	w.addSolo(3, "bob", "carol", 10, 9)
	svc := newMatchService(w)

	items, err := svc.PlayerMatches(context.Background(), testUserID, testGroupID, "alice")
	if err != nil {
		t.Fatalf("PlayerMatches: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 matches for alice, got %d", len(items))
	}
	if items[0].Seq != 1 || items[1].Seq != 2 {
		t.Fatalf("expected chronological order, got seqs %d, %d", items[0].Seq, items[1].Seq)
	}
}
