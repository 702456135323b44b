package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/rating"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/cache"
)

func newLeaderboardService(w *testWorld) *LeaderboardService {
	return NewLeaderboardService(w.groups, w.seasons, w.players, w.matches, rating.DefaultConfig(), 2)
}

func TestLeaderboardService_SeasonLeaderboard(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	w.addSolo(1, "alice", "bob", 10, 4)
	w.addSolo(2, "alice", "bob", 10, 7)
	svc := newLeaderboardService(w)

	standings, err := svc.SeasonLeaderboard(context.Background(), testUserID, testGroupID, testSeasonID)
	if err != nil {
		t.Fatalf("SeasonLeaderboard: %v", err)
	}

	// carol and dave never played, so only two rows.
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings, got %d", len(standings))
	}

	top := standings[0]
	if top.Rank != 1 || top.PlayerID != "alice" {
		t.Fatalf("expected alice at rank 1, got %+v", top)
	}
	if top.DisplayName != "Alice" {
		t.Fatalf("expected display name resolved, got %q", top.DisplayName)
	}
	if top.Played != 2 || top.Wins != 2 || top.Losses != 0 || top.Draws != 0 {
		t.Fatalf("unexpected alice tally: %+v", top)
	}
	if top.GoalsFor != 20 || top.GoalsAgainst != 11 || top.GoalDifference != 9 {
		t.Fatalf("unexpected alice goals: %+v", top)
	}
	if top.Rating <= rating.DefaultBaseRating {
		t.Fatalf("expected alice above base rating, got %v", top.Rating)
	}

	bottom := standings[1]
	if bottom.Rank != 2 || bottom.PlayerID != "bob" {
		t.Fatalf("expected bob at rank 2, got %+v", bottom)
	}
	if bottom.Losses != 2 {
		t.Fatalf("expected 2 losses for bob, got %d", bottom.Losses)
	}
}

func TestLeaderboardService_SeasonLeaderboard_TieBreaks(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	// Mirrored results leave alice and carol tied on rating and wins; goal
	// difference separates them.
	w.addSolo(1, "alice", "bob", 10, 4)
	w.addSolo(2, "carol", "dave", 10, 9)
	svc := newLeaderboardService(w)

	standings, err := svc.SeasonLeaderboard(context.Background(), testUserID, testGroupID, testSeasonID)
	if err != nil {
		t.Fatalf("SeasonLeaderboard: %v", err)
	}
	if len(standings) != 4 {
		t.Fatalf("expected 4 standings, got %d", len(standings))
	}
	if standings[0].PlayerID != "alice" || standings[1].PlayerID != "carol" {
		t.Fatalf("expected goal difference to break the tie, got %s then %s",
			standings[0].PlayerID, standings[1].PlayerID)
	}
	if standings[0].Rating != standings[1].Rating {
		t.Fatalf("expected equal ratings, got %v and %v", standings[0].Rating, standings[1].Rating)
	}
	// The losers also tie on rating and wins; dave's deficit is smaller.
	if standings[2].PlayerID != "dave" || standings[3].PlayerID != "bob" {
		t.Fatalf("unexpected loser ordering: %s then %s", standings[2].PlayerID, standings[3].PlayerID)
	}
}

func TestLeaderboardService_SeasonLeaderboard_SeasonScoped(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	m := w.addSolo(1, "alice", "bob", 10, 4)
	m.SeasonID = "s0"
	w.matches.items[0] = m
	w.addSolo(2, "carol", "dave", 10, 9)
	svc := newLeaderboardService(w)

	standings, err := svc.SeasonLeaderboard(context.Background(), testUserID, testGroupID, testSeasonID)
	if err != nil {
		t.Fatalf("SeasonLeaderboard: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected only current-season participants, got %d rows", len(standings))
	}
	for _, row := range standings {
		if row.PlayerID == "alice" || row.PlayerID == "bob" {
			t.Fatalf("player %s only played in another season", row.PlayerID)
		}
	}
}

func TestLeaderboardService_SeasonLeaderboard_UnknownSeason(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	svc := newLeaderboardService(w)

	_, err := svc.SeasonLeaderboard(context.Background(), testUserID, testGroupID, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaderboardService_SeasonLeaderboard_Cached(t *testing.T) {
	t.Parallel()

	w := newTestWorld()
	w.addSolo(1, "alice", "bob", 10, 4)
	svc := newLeaderboardService(w)

	store := cache.NewStore(time.Minute)
	svc.SetCache(store)

	first, err := svc.SeasonLeaderboard(context.Background(), testUserID, testGroupID, testSeasonID)
	if err != nil {
		t.Fatalf("SeasonLeaderboard: %v", err)
	}
	second, err := svc.SeasonLeaderboard(context.Background(), testUserID, testGroupID, testSeasonID)
	if err != nil {
		t.Fatalf("SeasonLeaderboard (cached): %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("cached result diverged: %d vs %d rows", len(first), len(second))
	}
	key := derivedPrefix(testGroupID) + "leaderboard:" + testSeasonID + ":v1"
	if _, ok := store.Get(context.Background(), key); !ok {
		t.Fatalf("expected leaderboard cached under %q", key)
	}
}
