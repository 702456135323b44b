package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/player"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/rating"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/season"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/cache"
)

const defaultStatsPoolSize = 8

// SeasonStanding is one row of a season leaderboard. Rating is the Elo fold
// over the season's matches only.
type SeasonStanding struct {
	Rank           int
	PlayerID       string
	DisplayName    string
	Played         int
	Wins           int
	Losses         int
	Draws          int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Rating         float64
}

type LeaderboardService struct {
	groupRepo  group.Repository
	seasonRepo season.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	eloCfg     rating.Config
	poolSize   int
	store      *cache.Store
}

func NewLeaderboardService(
	groupRepo group.Repository,
	seasonRepo season.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	eloCfg rating.Config,
	poolSize int,
) *LeaderboardService {
	if poolSize < 1 {
		poolSize = defaultStatsPoolSize
	}
	return &LeaderboardService{
		groupRepo:  groupRepo,
		seasonRepo: seasonRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		eloCfg:     eloCfg,
		poolSize:   poolSize,
	}
}

// SetCache memoizes leaderboards keyed by ledger version.
func (s *LeaderboardService) SetCache(store *cache.Store) {
	s.store = store
}

// SeasonLeaderboard ranks every player who played at least one match in the
// season: rating desc, wins desc, goal difference desc, player id asc.
func (s *LeaderboardService) SeasonLeaderboard(ctx context.Context, userID, groupID, seasonID string) ([]SeasonStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.SeasonLeaderboard")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return nil, err
	}
	groupID = strings.TrimSpace(groupID)
	seasonID = strings.TrimSpace(seasonID)

	target, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists || target.GroupID != groupID {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	if s.store == nil {
		return s.computeLeaderboard(ctx, groupID, seasonID)
	}

	version, err := s.matchRepo.Version(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get ledger version: %w", err)
	}

	key := fmt.Sprintf("%sleaderboard:%s:v%d", derivedPrefix(groupID), seasonID, version)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.computeLeaderboard(ctx, groupID, seasonID)
	})
	if err != nil {
		return nil, err
	}

	standings, ok := value.([]SeasonStanding)
	if !ok {
		return nil, fmt.Errorf("unexpected cached leaderboard type %T", value)
	}
	return standings, nil
}

func (s *LeaderboardService) computeLeaderboard(ctx context.Context, groupID, seasonID string) ([]SeasonStanding, error) {
	matches, err := s.matchRepo.ListBySeason(ctx, groupID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season matches: %w", err)
	}

	ratings := rating.Replay(matches, s.eloCfg)

	players, err := s.playerRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.DisplayName
	}

	// Players with zero season matches never appear on the board.
	participants := make([]string, 0, len(ratings))
	for playerID := range ratings {
		participants = append(participants, playerID)
	}
	sort.Strings(participants)

	standings, err := s.aggregate(participants, matches, ratings, names)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.PlayerID < b.PlayerID
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings, nil
}

// aggregate fans the per-player scans across a worker pool; each player's
// tally is independent so they merge without coordination.
func (s *LeaderboardService) aggregate(participants []string, matches []match.Match, ratings map[string]float64, names map[string]string) ([]SeasonStanding, error) {
	standings := make([]SeasonStanding, len(participants))

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, playerID := range participants {
		i, playerID := i, playerID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := SeasonStanding{
				PlayerID:    playerID,
				DisplayName: names[playerID],
				Rating:      ratings[playerID],
			}
			for _, m := range matches {
				outcome, ok := m.OutcomeFor(playerID)
				if !ok {
					continue
				}

				row.Played++
				switch outcome {
				case match.OutcomeWin:
					row.Wins++
				case match.OutcomeLoss:
					row.Losses++
				default:
					row.Draws++
				}

				gf, ga := goalsFor(m, playerID)
				row.GoalsFor += gf
				row.GoalsAgainst += ga
			}
			row.GoalDifference = row.GoalsFor - row.GoalsAgainst

			standings[i] = row
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	return standings, nil
}

func goalsFor(m match.Match, playerID string) (gf, ga int) {
	for _, id := range m.Team1.Players {
		if id == playerID {
			return m.Score1, m.Score2
		}
	}
	return m.Score2, m.Score1
}
