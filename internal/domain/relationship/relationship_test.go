package relationship

import (
	"testing"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
)

var testClock = time.Date(2026, 1, 10, 19, 0, 0, 0, time.UTC)

func duo(seq int64, team1, team2 [2]string, score1, score2 int) match.Match {
	return match.Match{
		ID:       "m" + string(rune('0'+seq)),
		GroupID:  "g1",
		SeasonID: "s1",
		Type:     match.TypeDuo,
		Team1:    match.Team{Players: team1[:]},
		Team2:    match.Team{Players: team2[:]},
		Score1:   score1,
		Score2:   score2,
		PlayedAt: testClock.Add(time.Duration(seq) * time.Hour),
		Seq:      seq,
	}
}

func solo(seq int64, p1, p2 string, score1, score2 int) match.Match {
	return match.Match{
		ID:       "m" + string(rune('0'+seq)),
		GroupID:  "g1",
		SeasonID: "s1",
		Type:     match.TypeSolo,
		Team1:    match.Team{Players: []string{p1}},
		Team2:    match.Team{Players: []string{p2}},
		Score1:   score1,
		Score2:   score2,
		PlayedAt: testClock.Add(time.Duration(seq) * time.Hour),
		Seq:      seq,
	}
}

func statsFor(list []Stats, playerID string) (Stats, bool) {
	for _, s := range list {
		if s.PlayerID == playerID {
			return s, true
		}
	}
	return Stats{}, false
}

func TestBuild_OpponentAggregates(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		solo(1, "alice", "bob", 10, 5),
		solo(2, "bob", "alice", 10, 7),
		solo(3, "alice", "bob", 10, 2),
		solo(4, "alice", "bob", 8, 8),
	}

	report := Build("alice", matches)

	bob, ok := statsFor(report.Opponents, "bob")
	if !ok {
		t.Fatalf("expected bob in opponents")
	}
	if bob.Games != 4 || bob.Wins != 2 || bob.Losses != 1 || bob.Draws != 1 {
		t.Fatalf("unexpected aggregates: %+v", bob)
	}
	if bob.Form != "DWLW" {
		t.Fatalf("form should be newest first, got %q", bob.Form)
	}
}

func TestBuild_TeammateAggregates(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		duo(1, [2]string{"alice", "bob"}, [2]string{"carol", "dave"}, 10, 4),
		duo(2, [2]string{"alice", "bob"}, [2]string{"carol", "dave"}, 3, 10),
		duo(3, [2]string{"alice", "carol"}, [2]string{"bob", "dave"}, 10, 9),
	}

	report := Build("alice", matches)

	bobAsTeammate, ok := statsFor(report.Teammates, "bob")
	if !ok {
		t.Fatalf("expected bob in teammates")
	}
	if bobAsTeammate.Games != 2 || bobAsTeammate.Wins != 1 || bobAsTeammate.Losses != 1 {
		t.Fatalf("unexpected teammate aggregates: %+v", bobAsTeammate)
	}

	// Match 3 has bob on the other side of the table.
	bobAsOpponent, ok := statsFor(report.Opponents, "bob")
	if !ok {
		t.Fatalf("expected bob in opponents")
	}
	if bobAsOpponent.Games != 1 || bobAsOpponent.Wins != 1 {
		t.Fatalf("unexpected opponent aggregates: %+v", bobAsOpponent)
	}
}

func TestBuild_SuperlativesRequireThreeSharedGames(t *testing.T) {
	t.Parallel()

	// Only two games against bob: no superlative despite a perfect record.
	matches := []match.Match{
		solo(1, "alice", "bob", 10, 5),
		solo(2, "alice", "bob", 10, 3),
	}

	report := Build("alice", matches)
	if report.EasiestOpponent != "" {
		t.Fatalf("two shared games must not qualify, got %q", report.EasiestOpponent)
	}

	matches = append(matches, solo(3, "alice", "bob", 10, 1))
	report = Build("alice", matches)
	if report.EasiestOpponent != "bob" {
		t.Fatalf("three shared games should qualify, got %q", report.EasiestOpponent)
	}
}

func TestBuild_BestTeammateNeedsAWin(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		duo(1, [2]string{"alice", "bob"}, [2]string{"carol", "dave"}, 2, 10),
		duo(2, [2]string{"alice", "bob"}, [2]string{"carol", "dave"}, 3, 10),
		duo(3, [2]string{"alice", "bob"}, [2]string{"carol", "dave"}, 4, 10),
	}

	report := Build("alice", matches)
	if report.BestTeammate != "" {
		t.Fatalf("teammate with zero wins must not be best, got %q", report.BestTeammate)
	}
	if report.WorstTeammate != "bob" {
		t.Fatalf("expected bob as worst teammate, got %q", report.WorstTeammate)
	}
}

func TestBuild_SuperlativePicksExtremeWinRate(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		// 3 wins against bob.
		solo(1, "alice", "bob", 10, 5),
		solo(2, "alice", "bob", 10, 5),
		solo(3, "alice", "bob", 10, 5),
		// 1 win, 2 losses against carol.
		solo(4, "alice", "carol", 10, 5),
		solo(5, "carol", "alice", 10, 5),
		solo(6, "carol", "alice", 10, 5),
	}

	report := Build("alice", matches)
	if report.EasiestOpponent != "bob" {
		t.Fatalf("expected bob as easiest opponent, got %q", report.EasiestOpponent)
	}
	if report.HardestOpponent != "carol" {
		t.Fatalf("expected carol as hardest opponent, got %q", report.HardestOpponent)
	}
}

func TestBuild_IgnoresMatchesWithoutSubject(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		solo(1, "bob", "carol", 10, 5),
	}

	report := Build("alice", matches)
	if len(report.Teammates) != 0 || len(report.Opponents) != 0 {
		t.Fatalf("matches without the subject must not contribute: %+v", report)
	}
}
