// Package relationship derives head-to-head and partnership statistics for
// one player from the match ledger.
package relationship

import (
	"sort"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
)

// minSharedGames gates superlatives so a single lucky game cannot crown a
// best teammate or hardest opponent.
const minSharedGames = 3

// formWindow is how many recent shared games feed the Form string.
const formWindow = 5

// Stats aggregates one relationship: everything the subject played with (as
// teammate) or against (as opponent) the other player. Form holds the most
// recent shared outcomes, newest first, as a W/L/D string.
type Stats struct {
	PlayerID string
	Games    int
	Wins     int
	Losses   int
	Draws    int
	Form     string
}

// WinRate is wins over games; zero when no games were played.
func (s Stats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Report is the full relationship picture for one player. Superlative fields
// are empty when no relationship qualifies.
type Report struct {
	PlayerID        string
	Teammates       []Stats
	Opponents       []Stats
	BestTeammate    string
	WorstTeammate   string
	EasiestOpponent string
	HardestOpponent string
}

// Build computes the report from the player's matches. The input must be in
// chronological order (oldest first); only matches involving playerID
// contribute.
func Build(playerID string, matches []match.Match) Report {
	teammates := make(map[string]*Stats)
	opponents := make(map[string]*Stats)

	recent := func(m map[string]*Stats, otherID string) *Stats {
		s, ok := m[otherID]
		if !ok {
			s = &Stats{PlayerID: otherID}
			m[otherID] = s
		}
		return s
	}

	for _, m := range matches {
		outcome, ok := m.OutcomeFor(playerID)
		if !ok {
			continue
		}

		for _, teammateID := range m.Teammates(playerID) {
			record(recent(teammates, teammateID), outcome)
		}
		for _, opponentID := range m.Opponents(playerID) {
			record(recent(opponents, opponentID), outcome)
		}
	}

	report := Report{
		PlayerID:  playerID,
		Teammates: flatten(teammates),
		Opponents: flatten(opponents),
	}

	report.BestTeammate = pick(report.Teammates, func(s Stats) bool { return s.Wins >= 1 }, func(a, b Stats) bool {
		return higherWinRate(a, b)
	})
	report.WorstTeammate = pick(report.Teammates, func(s Stats) bool { return s.Losses >= 1 }, func(a, b Stats) bool {
		return lowerWinRate(a, b)
	})
	report.EasiestOpponent = pick(report.Opponents, func(s Stats) bool { return s.Wins >= 1 }, func(a, b Stats) bool {
		return higherWinRate(a, b)
	})
	report.HardestOpponent = pick(report.Opponents, func(s Stats) bool { return s.Losses >= 1 }, func(a, b Stats) bool {
		return lowerWinRate(a, b)
	})

	return report
}

func record(s *Stats, outcome match.Outcome) {
	s.Games++
	switch outcome {
	case match.OutcomeWin:
		s.Wins++
	case match.OutcomeLoss:
		s.Losses++
	default:
		s.Draws++
	}

	// Newest outcome goes first; trim to the window.
	s.Form = string(outcome) + s.Form
	if len(s.Form) > formWindow {
		s.Form = s.Form[:formWindow]
	}
}

func flatten(m map[string]*Stats) []Stats {
	out := make([]Stats, 0, len(m))
	for _, s := range m {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// pick returns the player id of the qualifying relationship ranked first by
// better, or "" when none qualifies. Ties resolve to the lower player id so
// the choice is deterministic.
func pick(list []Stats, qualifies func(Stats) bool, better func(a, b Stats) bool) string {
	var best *Stats
	for i := range list {
		s := list[i]
		if s.Games < minSharedGames || !qualifies(s) {
			continue
		}
		if best == nil || better(s, *best) {
			best = &list[i]
		}
	}
	if best == nil {
		return ""
	}
	return best.PlayerID
}

func higherWinRate(a, b Stats) bool {
	if a.WinRate() != b.WinRate() {
		return a.WinRate() > b.WinRate()
	}
	if a.Games != b.Games {
		return a.Games > b.Games
	}
	return a.PlayerID < b.PlayerID
}

func lowerWinRate(a, b Stats) bool {
	if a.WinRate() != b.WinRate() {
		return a.WinRate() < b.WinRate()
	}
	if a.Games != b.Games {
		return a.Games > b.Games
	}
	return a.PlayerID < b.PlayerID
}
