// Package match holds the append-only ledger entry type. A match is immutable
// once appended; every statistic elsewhere in the system is derived by
// replaying ledger entries in chronological order.
package match

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Type distinguishes singles from doubles play.
type Type string

const (
	TypeSolo Type = "1v1"
	TypeDuo  Type = "2v2"
)

var AllTypes = map[Type]struct{}{
	TypeSolo: {},
	TypeDuo:  {},
}

// teamSize returns the roster size the match type demands.
func (t Type) teamSize() int {
	if t == TypeDuo {
		return 2
	}
	return 1
}

// Outcome is a match result seen from one participant's side.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeLoss Outcome = "L"
	OutcomeDraw Outcome = "D"
)

var (
	ErrSeasonNotActive = errors.New("season is not active")
	ErrPlayerOverlap   = errors.New("player appears on both teams")
)

// Team is one side of a match: exactly one player for 1v1, exactly two
// for 2v2.
type Team struct {
	Players []string
}

// PlayerStat is an optional rating snapshot captured at append time. It is
// informational only; authoritative ratings always come from a replay.
type PlayerStat struct {
	PlayerID     string
	RatingBefore float64
	RatingAfter  float64
}

// Match is a single ledger entry. Seq is the insertion sequence assigned by
// the repository and breaks ordering ties between equal timestamps.
type Match struct {
	ID          string
	GroupID     string
	SeasonID    string
	Type        Type
	Team1       Team
	Team2       Team
	Score1      int
	Score2      int
	PlayerStats []PlayerStat
	PlayedAt    time.Time
	Seq         int64
	RecordedBy  string
	CreatedAt   time.Time
}

func (m Match) Validate() error {
	if m.GroupID == "" {
		return fmt.Errorf("match group id is required")
	}
	if m.SeasonID == "" {
		return fmt.Errorf("match season id is required")
	}
	if _, ok := AllTypes[m.Type]; !ok {
		return fmt.Errorf("invalid match type: %s", m.Type)
	}
	if m.PlayedAt.IsZero() {
		return fmt.Errorf("match played_at is required")
	}
	if m.Score1 < 0 || m.Score2 < 0 {
		return fmt.Errorf("match scores must not be negative")
	}

	want := m.Type.teamSize()
	if len(m.Team1.Players) != want || len(m.Team2.Players) != want {
		return fmt.Errorf("%s match requires %d player(s) per team", m.Type, want)
	}

	seen := make(map[string]struct{}, 2*want)
	for _, side := range []Team{m.Team1, m.Team2} {
		for _, playerID := range side.Players {
			if playerID == "" {
				return fmt.Errorf("match player id is required")
			}
			if _, dup := seen[playerID]; dup {
				return fmt.Errorf("%w: %s", ErrPlayerOverlap, playerID)
			}
			seen[playerID] = struct{}{}
		}
	}

	return nil
}

// Players returns every participant, team1 first.
func (m Match) Players() []string {
	out := make([]string, 0, len(m.Team1.Players)+len(m.Team2.Players))
	out = append(out, m.Team1.Players...)
	out = append(out, m.Team2.Players...)
	return out
}

// Involves reports whether playerID took part in the match.
func (m Match) Involves(playerID string) bool {
	_, ok := m.OutcomeFor(playerID)
	return ok
}

// OutcomeFor returns the result from playerID's perspective.
func (m Match) OutcomeFor(playerID string) (Outcome, bool) {
	onTeam := func(t Team) bool {
		for _, id := range t.Players {
			if id == playerID {
				return true
			}
		}
		return false
	}

	var score, opponentScore int
	switch {
	case onTeam(m.Team1):
		score, opponentScore = m.Score1, m.Score2
	case onTeam(m.Team2):
		score, opponentScore = m.Score2, m.Score1
	default:
		return "", false
	}

	switch {
	case score > opponentScore:
		return OutcomeWin, true
	case score < opponentScore:
		return OutcomeLoss, true
	default:
		return OutcomeDraw, true
	}
}

// Teammates returns playerID's teammates, empty for 1v1.
func (m Match) Teammates(playerID string) []string {
	own, _ := m.sidesFor(playerID)
	if own == nil {
		return nil
	}

	out := make([]string, 0, len(own.Players)-1)
	for _, id := range own.Players {
		if id != playerID {
			out = append(out, id)
		}
	}
	return out
}

// Opponents returns the players on the other side of the table.
func (m Match) Opponents(playerID string) []string {
	_, other := m.sidesFor(playerID)
	if other == nil {
		return nil
	}
	return append([]string(nil), other.Players...)
}

func (m Match) sidesFor(playerID string) (own, other *Team) {
	for _, id := range m.Team1.Players {
		if id == playerID {
			return &m.Team1, &m.Team2
		}
	}
	for _, id := range m.Team2.Players {
		if id == playerID {
			return &m.Team2, &m.Team1
		}
	}
	return nil, nil
}

// SortChronological orders matches oldest first: played_at ascending, with
// the insertion sequence breaking ties. Replays depend on this ordering
// being stable.
func SortChronological(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].PlayedAt.Equal(matches[j].PlayedAt) {
			return matches[i].PlayedAt.Before(matches[j].PlayedAt)
		}
		return matches[i].Seq < matches[j].Seq
	})
}
