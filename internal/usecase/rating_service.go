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
	"github.com/torryt/foos-and-friends-sub002/internal/platform/cache"
)

// PlayerRating is a point-in-time rating view derived from the ledger.
type PlayerRating struct {
	PlayerID string
	Rating   float64
	Games    int
	AsOf     *time.Time
}

type groupRatings struct {
	ratings map[string]float64
	games   map[string]int
}

type RatingService struct {
	groupRepo  group.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	eloCfg     rating.Config
	store      *cache.Store
}

func NewRatingService(
	groupRepo group.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	eloCfg rating.Config,
) *RatingService {
	return &RatingService{
		groupRepo:  groupRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		eloCfg:     eloCfg,
	}
}

// SetCache memoizes the group replay keyed by ledger version.
func (s *RatingService) SetCache(store *cache.Store) {
	s.store = store
}

// PlayerRating returns the player's current rating, or the rating as of the
// given cutoff when asOf is set. Players with no matches sit at the base
// rating.
func (s *RatingService) PlayerRating(ctx context.Context, userID, groupID, playerID string, asOf *time.Time) (PlayerRating, error) {
	ctx, span := startUsecaseSpan(ctx, "RatingService.PlayerRating")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return PlayerRating{}, err
	}
	if err := requirePlayerInGroup(ctx, s.playerRepo, groupID, playerID); err != nil {
		return PlayerRating{}, err
	}
	groupID = strings.TrimSpace(groupID)
	playerID = strings.TrimSpace(playerID)

	var (
		derived groupRatings
		err     error
	)
	if asOf != nil {
		// Historical cutoffs bypass the cache; they are rare and unbounded.
		derived, err = s.replayUntil(ctx, groupID, *asOf)
	} else {
		derived, err = s.currentRatings(ctx, groupID)
	}
	if err != nil {
		return PlayerRating{}, err
	}

	out := PlayerRating{
		PlayerID: playerID,
		Rating:   s.baseRating(),
		Games:    derived.games[playerID],
		AsOf:     asOf,
	}
	if r, ok := derived.ratings[playerID]; ok {
		out.Rating = r
	}

	return out, nil
}

// RatingHistory returns the player's full rating trajectory, oldest first.
// A player with no matches has an empty history.
func (s *RatingService) RatingHistory(ctx context.Context, userID, groupID, playerID string) ([]rating.Change, error) {
	ctx, span := startUsecaseSpan(ctx, "RatingService.RatingHistory")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return nil, err
	}
	if err := requirePlayerInGroup(ctx, s.playerRepo, groupID, playerID); err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByGroup(ctx, strings.TrimSpace(groupID))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	_, history := rating.ReplayHistory(matches, s.eloCfg)

	changes := history[strings.TrimSpace(playerID)]
	if changes == nil {
		changes = []rating.Change{}
	}
	return changes, nil
}

func (s *RatingService) currentRatings(ctx context.Context, groupID string) (groupRatings, error) {
	if s.store == nil {
		return s.replayUntil(ctx, groupID, time.Time{})
	}

	version, err := s.matchRepo.Version(ctx, groupID)
	if err != nil {
		return groupRatings{}, fmt.Errorf("get ledger version: %w", err)
	}

	key := fmt.Sprintf("%sratings:v%d", derivedPrefix(groupID), version)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.replayUntil(ctx, groupID, time.Time{})
	})
	if err != nil {
		return groupRatings{}, err
	}

	derived, ok := value.(groupRatings)
	if !ok {
		return groupRatings{}, fmt.Errorf("unexpected cached rating type %T", value)
	}
	return derived, nil
}

// replayUntil folds the group ledger, optionally truncated at cutoff.
func (s *RatingService) replayUntil(ctx context.Context, groupID string, cutoff time.Time) (groupRatings, error) {
	var (
		matches []match.Match
		err     error
	)
	if cutoff.IsZero() {
		matches, err = s.matchRepo.ListByGroup(ctx, groupID)
	} else {
		matches, err = s.matchRepo.ListByGroupUntil(ctx, groupID, cutoff)
	}
	if err != nil {
		return groupRatings{}, fmt.Errorf("list matches: %w", err)
	}

	derived := groupRatings{
		ratings: rating.Replay(matches, s.eloCfg),
		games:   make(map[string]int),
	}
	for _, m := range matches {
		for _, playerID := range m.Players() {
			derived.games[playerID]++
		}
	}

	return derived, nil
}

func (s *RatingService) baseRating() float64 {
	if s.eloCfg.BaseRating > 0 {
		return s.eloCfg.BaseRating
	}
	return rating.DefaultBaseRating
}
