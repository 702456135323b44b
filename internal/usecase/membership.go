package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
)

// requireMember loads the group and verifies the caller belongs to it. Every
// group-scoped operation goes through this gate.
func requireMember(ctx context.Context, groups group.Repository, groupID, userID string) (group.Group, error) {
	groupID = strings.TrimSpace(groupID)
	userID = strings.TrimSpace(userID)
	if groupID == "" {
		return group.Group{}, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	if userID == "" {
		return group.Group{}, fmt.Errorf("%w: missing caller identity", ErrUnauthorized)
	}

	g, exists, err := groups.GetByID(ctx, groupID)
	if err != nil {
		return group.Group{}, fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return group.Group{}, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}

	_, isMember, err := groups.GetMembership(ctx, groupID, userID)
	if err != nil {
		return group.Group{}, fmt.Errorf("get membership: %w", err)
	}
	if !isMember {
		return group.Group{}, fmt.Errorf("%w: user is not a member of group %s", ErrUnauthorized, groupID)
	}

	return g, nil
}
