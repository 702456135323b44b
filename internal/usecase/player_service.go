package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/player"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/id"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/logging"
)

type CreatePlayerInput struct {
	GroupID     string
	DisplayName string
	AvatarURL   string
}

type PlayerService struct {
	groupRepo  group.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerService(
	groupRepo group.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		groupRepo:  groupRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerService) CreatePlayer(ctx context.Context, userID string, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.CreatePlayer")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, input.GroupID, userID); err != nil {
		return player.Player{}, err
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := player.Player{
		ID:          playerID,
		GroupID:     strings.TrimSpace(input.GroupID),
		DisplayName: strings.TrimSpace(input.DisplayName),
		AvatarURL:   strings.TrimSpace(input.AvatarURL),
		CreatedAt:   s.now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", p.ID, "group_id", p.GroupID)

	return p, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, userID, groupID, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetPlayer")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return player.Player{}, err
	}
	playerID = strings.TrimSpace(playerID)

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists || p.GroupID != strings.TrimSpace(groupID) {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context, userID, groupID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListPlayers")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByGroup(ctx, strings.TrimSpace(groupID))
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return items, nil
}

// DeletePlayer removes a player that never appeared on the ledger. Players
// with match history are kept so historical statistics keep replaying.
func (s *PlayerService) DeletePlayer(ctx context.Context, userID, groupID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.DeletePlayer")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return err
	}
	if err := requirePlayerInGroup(ctx, s.playerRepo, groupID, playerID); err != nil {
		return err
	}
	groupID = strings.TrimSpace(groupID)
	playerID = strings.TrimSpace(playerID)

	count, err := s.matchRepo.CountByPlayer(ctx, groupID, playerID)
	if err != nil {
		return fmt.Errorf("count matches by player: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: player %s has %d recorded matches", ErrConflict, playerID, count)
	}

	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", playerID, "group_id", groupID)

	return nil
}
