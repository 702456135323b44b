// Package rating derives Elo ratings by folding over the match ledger. The
// fold is pure: the same ledger always yields the same ratings, so callers
// are free to recompute rather than persist.
package rating

import (
	"math"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
)

const (
	DefaultBaseRating = 1200
	DefaultKFactor    = 32
)

// Config carries the two Elo knobs. K applies uniformly; there is no
// provisional-player boost.
type Config struct {
	BaseRating float64
	KFactor    float64
}

func DefaultConfig() Config {
	return Config{
		BaseRating: DefaultBaseRating,
		KFactor:    DefaultKFactor,
	}
}

func (c Config) normalized() Config {
	if c.BaseRating <= 0 {
		c.BaseRating = DefaultBaseRating
	}
	if c.KFactor <= 0 {
		c.KFactor = DefaultKFactor
	}
	return c
}

// Change records one match's effect on one player's rating.
type Change struct {
	MatchID  string
	PlayedAt time.Time
	Seq      int64
	Before   float64
	After    float64
	Delta    float64
}

// ExpectedScore is the standard Elo expectation for a rating against an
// opponent rating.
func ExpectedScore(rating, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-rating)/400))
}

// Replay folds the matches in chronological order and returns every
// participant's final rating. The input slice is not modified.
func Replay(matches []match.Match, cfg Config) map[string]float64 {
	ratings, _ := replay(matches, cfg, false)
	return ratings
}

// ReplayHistory is Replay plus the per-match rating trajectory of every
// participant, oldest change first.
func ReplayHistory(matches []match.Match, cfg Config) (map[string]float64, map[string][]Change) {
	return replay(matches, cfg, true)
}

func replay(matches []match.Match, cfg Config, withHistory bool) (map[string]float64, map[string][]Change) {
	cfg = cfg.normalized()

	ordered := append([]match.Match(nil), matches...)
	match.SortChronological(ordered)

	ratings := make(map[string]float64)
	var history map[string][]Change
	if withHistory {
		history = make(map[string][]Change)
	}

	ratingOf := func(playerID string) float64 {
		if r, ok := ratings[playerID]; ok {
			return r
		}
		return cfg.BaseRating
	}

	for _, m := range ordered {
		team1 := m.Team1.Players
		team2 := m.Team2.Players
		if len(team1) == 0 || len(team2) == 0 {
			continue
		}

		// Teams are rated by the arithmetic mean of their members.
		r1 := teamMean(team1, ratingOf)
		r2 := teamMean(team2, ratingOf)

		score1 := actualScore(m.Score1, m.Score2)
		delta1 := cfg.KFactor * (score1 - ExpectedScore(r1, r2))

		// Zero-sum: team2 moves by exactly the opposite amount, and every
		// member of a team receives the full team delta.
		applyDelta(team1, delta1, ratings, ratingOf, m, history)
		applyDelta(team2, -delta1, ratings, ratingOf, m, history)
	}

	return ratings, history
}

func teamMean(players []string, ratingOf func(string) float64) float64 {
	var sum float64
	for _, id := range players {
		sum += ratingOf(id)
	}
	return sum / float64(len(players))
}

// actualScore maps a scoreline to Elo's S term: 1 for a win, 0 for a loss,
// 0.5 for a draw.
func actualScore(score, opponentScore int) float64 {
	switch {
	case score > opponentScore:
		return 1
	case score < opponentScore:
		return 0
	default:
		return 0.5
	}
}

func applyDelta(players []string, delta float64, ratings map[string]float64, ratingOf func(string) float64, m match.Match, history map[string][]Change) {
	for _, id := range players {
		before := ratingOf(id)
		after := before + delta
		ratings[id] = after

		if history != nil {
			history[id] = append(history[id], Change{
				MatchID:  m.ID,
				PlayedAt: m.PlayedAt,
				Seq:      m.Seq,
				Before:   before,
				After:    after,
				Delta:    delta,
			})
		}
	}
}
