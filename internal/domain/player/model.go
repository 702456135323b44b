package player

import (
	"fmt"
	"time"
)

// Player is a named participant on a group's ledger. A player may be linked
// to a user account through a group membership but exists independently of
// one, so groups can track friends who never sign up.
type Player struct {
	ID          string
	GroupID     string
	DisplayName string
	AvatarURL   string
	CreatedAt   time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.GroupID == "" {
		return fmt.Errorf("player group id is required")
	}
	if p.DisplayName == "" {
		return fmt.Errorf("player display name is required")
	}

	return nil
}
