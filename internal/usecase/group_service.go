package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/season"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/id"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/logging"
)

const firstSeasonName = "Season 1"

type GroupService struct {
	groupRepo  group.Repository
	seasonRepo season.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewGroupService(
	groupRepo group.Repository,
	seasonRepo season.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *GroupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GroupService{
		groupRepo:  groupRepo,
		seasonRepo: seasonRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateGroup creates the group, enrolls the creator as its first member and
// opens an initial active season so matches can be recorded immediately.
func (s *GroupService) CreateGroup(ctx context.Context, userID, name string) (group.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "GroupService.CreateGroup")
	defer span.End()

	userID = strings.TrimSpace(userID)
	name = strings.TrimSpace(name)
	if userID == "" {
		return group.Group{}, fmt.Errorf("%w: missing caller identity", ErrUnauthorized)
	}
	if name == "" {
		return group.Group{}, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	groupID, err := s.idGen.NewID()
	if err != nil {
		return group.Group{}, fmt.Errorf("generate group id: %w", err)
	}
	inviteCode, err := s.idGen.NewInviteCode()
	if err != nil {
		return group.Group{}, fmt.Errorf("generate invite code: %w", err)
	}

	now := s.now().UTC()
	g := group.Group{
		ID:          groupID,
		Name:        name,
		OwnerUserID: userID,
		InviteCode:  inviteCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := g.Validate(); err != nil {
		return group.Group{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.groupRepo.Create(ctx, g); err != nil {
		return group.Group{}, fmt.Errorf("create group: %w", err)
	}

	if err := s.groupRepo.AddMember(ctx, group.Membership{
		GroupID:  g.ID,
		UserID:   userID,
		JoinedAt: now,
	}); err != nil {
		return group.Group{}, fmt.Errorf("add owner membership: %w", err)
	}

	seasonID, err := s.idGen.NewID()
	if err != nil {
		return group.Group{}, fmt.Errorf("generate season id: %w", err)
	}
	if err := s.seasonRepo.Create(ctx, season.Season{
		ID:        seasonID,
		GroupID:   g.ID,
		Name:      firstSeasonName,
		IsActive:  true,
		StartedAt: now,
	}); err != nil {
		return group.Group{}, fmt.Errorf("create initial season: %w", err)
	}

	s.logger.InfoContext(ctx, "group created", "group_id", g.ID, "owner", userID)

	return g, nil
}

// JoinGroup enrolls the caller using an invite code. Joining a group the
// caller already belongs to is a no-op.
func (s *GroupService) JoinGroup(ctx context.Context, userID, inviteCode string) (group.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "GroupService.JoinGroup")
	defer span.End()

	userID = strings.TrimSpace(userID)
	inviteCode = strings.TrimSpace(inviteCode)
	if userID == "" {
		return group.Group{}, fmt.Errorf("%w: missing caller identity", ErrUnauthorized)
	}
	if inviteCode == "" {
		return group.Group{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}

	g, exists, err := s.groupRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return group.Group{}, fmt.Errorf("get group by invite code: %w", err)
	}
	if !exists {
		return group.Group{}, fmt.Errorf("%w: invite code does not match any group", ErrNotFound)
	}

	_, isMember, err := s.groupRepo.GetMembership(ctx, g.ID, userID)
	if err != nil {
		return group.Group{}, fmt.Errorf("get membership: %w", err)
	}
	if isMember {
		return g, nil
	}

	if err := s.groupRepo.AddMember(ctx, group.Membership{
		GroupID:  g.ID,
		UserID:   userID,
		JoinedAt: s.now().UTC(),
	}); err != nil {
		return group.Group{}, fmt.Errorf("add membership: %w", err)
	}

	s.logger.InfoContext(ctx, "group joined", "group_id", g.ID, "user_id", userID)

	return g, nil
}

func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]group.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "GroupService.ListGroups")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: missing caller identity", ErrUnauthorized)
	}

	items, err := s.groupRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups by user: %w", err)
	}

	return items, nil
}

func (s *GroupService) ListSeasons(ctx context.Context, userID, groupID string) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "GroupService.ListSeasons")
	defer span.End()

	if _, err := requireMember(ctx, s.groupRepo, groupID, userID); err != nil {
		return nil, err
	}

	items, err := s.seasonRepo.ListByGroup(ctx, strings.TrimSpace(groupID))
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	return items, nil
}
