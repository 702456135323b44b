package season

import (
	"fmt"
	"time"
)

// Season partitions a group's ledger for leaderboard purposes. A group has at
// most one active season; appends against an archived season are rejected.
type Season struct {
	ID         string
	GroupID    string
	Name       string
	IsActive   bool
	StartedAt  time.Time
	ArchivedAt *time.Time
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.GroupID == "" {
		return fmt.Errorf("season group id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}

	return nil
}
