package group

import "context"

// Repository describes group persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, g Group) error
	GetByID(ctx context.Context, groupID string) (Group, bool, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (Group, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Group, error)
	AddMember(ctx context.Context, m Membership) error
	GetMembership(ctx context.Context, groupID, userID string) (Membership, bool, error)
	ListMembers(ctx context.Context, groupID string) ([]Membership, error)
}
