package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, s Season) error
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	ListByGroup(ctx context.Context, groupID string) ([]Season, error)
	GetActiveByGroup(ctx context.Context, groupID string) (Season, bool, error)
	// SetActive marks the given season active and archives the group's
	// previously active season in the same operation.
	SetActive(ctx context.Context, groupID, seasonID string) error
}
