package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, p Player) error
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, groupID string, playerIDs []string) ([]Player, error)
	ListByGroup(ctx context.Context, groupID string) ([]Player, error)
	Delete(ctx context.Context, playerID string) error
}
