package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/player"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/relationship"
)

type RelationshipService struct {
	groupRepo  group.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
}

func NewRelationshipService(
	groupRepo group.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
) *RelationshipService {
	return &RelationshipService{
		groupRepo:  groupRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

// PlayerRelationships builds per-teammate and per-opponent aggregates with
// superlatives for the player.
func (s *RelationshipService) PlayerRelationships(ctx context.Context, userID, groupID, playerID string) (relationship.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "RelationshipService.PlayerRelationships")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return relationship.Report{}, err
	}
	if err := requirePlayerInGroup(ctx, s.playerRepo, groupID, playerID); err != nil {
		return relationship.Report{}, err
	}
	playerID = strings.TrimSpace(playerID)

	matches, err := s.matchRepo.ListByPlayer(ctx, strings.TrimSpace(groupID), playerID)
	if err != nil {
		return relationship.Report{}, fmt.Errorf("list matches by player: %w", err)
	}

	return relationship.Build(playerID, matches), nil
}
