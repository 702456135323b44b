package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/player"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/rating"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/season"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/cache"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/id"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/logging"
)

// RecordMatchInput is the append request. SeasonID may be empty, in which
// case the group's active season is used.
type RecordMatchInput struct {
	GroupID  string
	SeasonID string
	Type     string
	Team1    []string
	Team2    []string
	Score1   int
	Score2   int
	PlayedAt time.Time
}

type MatchService struct {
	groupRepo  group.Repository
	seasonRepo season.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	idGen      id.Generator
	eloCfg     rating.Config
	store      *cache.Store
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	groupRepo group.Repository,
	seasonRepo season.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	idGen id.Generator,
	eloCfg rating.Config,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		groupRepo:  groupRepo,
		seasonRepo: seasonRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		eloCfg:     eloCfg,
		logger:     logger,
		now:        time.Now,
	}
}

// SetCache enables derived-statistic invalidation on append.
func (s *MatchService) SetCache(store *cache.Store) {
	s.store = store
}

// RecordMatch validates and appends one ledger entry. The entry is immutable
// afterwards; rating snapshots stored with it are informational only.
func (s *MatchService) RecordMatch(ctx context.Context, userID string, input RecordMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.RecordMatch")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, input.GroupID, userID); err != nil {
		return match.Match{}, err
	}
	input.GroupID = strings.TrimSpace(input.GroupID)

	target, err := s.resolveSeason(ctx, input.GroupID, input.SeasonID)
	if err != nil {
		return match.Match{}, err
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	playedAt := input.PlayedAt
	if playedAt.IsZero() {
		playedAt = s.now().UTC()
	}

	m := match.Match{
		ID:         matchID,
		GroupID:    input.GroupID,
		SeasonID:   target.ID,
		Type:       match.Type(strings.TrimSpace(input.Type)),
		Team1:      match.Team{Players: trimAll(input.Team1)},
		Team2:      match.Team{Players: trimAll(input.Team2)},
		Score1:     input.Score1,
		Score2:     input.Score2,
		PlayedAt:   playedAt,
		RecordedBy: strings.TrimSpace(userID),
		CreatedAt:  s.now().UTC(),
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.verifyPlayers(ctx, input.GroupID, m.Players()); err != nil {
		return match.Match{}, err
	}

	if err := s.captureRatingSnapshots(ctx, &m); err != nil {
		return match.Match{}, err
	}

	stored, err := s.matchRepo.Append(ctx, m)
	if err != nil {
		return match.Match{}, fmt.Errorf("append match: %w", err)
	}

	if s.store != nil {
		s.store.DeletePrefix(ctx, derivedPrefix(stored.GroupID))
	}

	s.logger.InfoContext(ctx, "match recorded",
		"match_id", stored.ID,
		"group_id", stored.GroupID,
		"season_id", stored.SeasonID,
		"type", string(stored.Type),
		"seq", stored.Seq,
	)

	return stored, nil
}

// PlayerMatches returns a player's full match history, oldest first.
func (s *MatchService) PlayerMatches(ctx context.Context, userID, groupID, playerID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.PlayerMatches")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return nil, err
	}
	if err := requirePlayerInGroup(ctx, s.playerRepo, groupID, playerID); err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListByPlayer(ctx, strings.TrimSpace(groupID), strings.TrimSpace(playerID))
	if err != nil {
		return nil, fmt.Errorf("list matches by player: %w", err)
	}

	return items, nil
}

func (s *MatchService) resolveSeason(ctx context.Context, groupID, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		active, exists, err := s.seasonRepo.GetActiveByGroup(ctx, groupID)
		if err != nil {
			return season.Season{}, fmt.Errorf("get active season: %w", err)
		}
		if !exists {
			return season.Season{}, fmt.Errorf("%w: group %s has no active season", ErrNotFound, groupID)
		}
		return active, nil
	}

	target, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists || target.GroupID != groupID {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	if !target.IsActive {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, match.ErrSeasonNotActive)
	}

	return target, nil
}

func (s *MatchService) verifyPlayers(ctx context.Context, groupID string, playerIDs []string) error {
	found, err := s.playerRepo.GetByIDs(ctx, groupID, playerIDs)
	if err != nil {
		return fmt.Errorf("get players: %w", err)
	}
	if len(found) == len(playerIDs) {
		return nil
	}

	known := make(map[string]struct{}, len(found))
	for _, p := range found {
		known[p.ID] = struct{}{}
	}
	for _, playerID := range playerIDs {
		if _, ok := known[playerID]; !ok {
			return fmt.Errorf("%w: unknown player %s", ErrInvalidInput, playerID)
		}
	}

	return nil
}

// captureRatingSnapshots replays the ledger to record each participant's
// rating before and after this match.
func (s *MatchService) captureRatingSnapshots(ctx context.Context, m *match.Match) error {
	existing, err := s.matchRepo.ListByGroup(ctx, m.GroupID)
	if err != nil {
		return fmt.Errorf("list matches for snapshot: %w", err)
	}

	before := rating.Replay(existing, s.eloCfg)
	after := rating.Replay(append(existing, *m), s.eloCfg)

	base := s.eloCfg.BaseRating
	if base <= 0 {
		base = rating.DefaultBaseRating
	}

	stats := make([]match.PlayerStat, 0, len(m.Players()))
	for _, playerID := range m.Players() {
		pre, ok := before[playerID]
		if !ok {
			pre = base
		}
		stats = append(stats, match.PlayerStat{
			PlayerID:     playerID,
			RatingBefore: pre,
			RatingAfter:  after[playerID],
		})
	}
	m.PlayerStats = stats

	return nil
}

func requirePlayerInGroup(ctx context.Context, players player.Repository, groupID, playerID string) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := players.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists || p.GroupID != strings.TrimSpace(groupID) {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return nil
}

func derivedPrefix(groupID string) string {
	return "derived:" + groupID + ":"
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
