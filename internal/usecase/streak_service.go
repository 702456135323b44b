package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/player"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/streak"
)

type StreakService struct {
	groupRepo  group.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
}

func NewStreakService(
	groupRepo group.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
) *StreakService {
	return &StreakService{
		groupRepo:  groupRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

// PlayerStreaks derives the player's current, best-win and worst-loss runs
// from their chronological match history.
func (s *StreakService) PlayerStreaks(ctx context.Context, userID, groupID, playerID string) (streak.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "StreakService.PlayerStreaks")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return streak.Data{}, err
	}
	if err := requirePlayerInGroup(ctx, s.playerRepo, groupID, playerID); err != nil {
		return streak.Data{}, err
	}
	playerID = strings.TrimSpace(playerID)

	matches, err := s.matchRepo.ListByPlayer(ctx, strings.TrimSpace(groupID), playerID)
	if err != nil {
		return streak.Data{}, fmt.Errorf("list matches by player: %w", err)
	}

	outcomes := make([]match.Outcome, 0, len(matches))
	for _, m := range matches {
		if outcome, ok := m.OutcomeFor(playerID); ok {
			outcomes = append(outcomes, outcome)
		}
	}

	return streak.Compute(outcomes), nil
}
