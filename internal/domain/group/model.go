package group

import (
	"fmt"
	"time"
)

// Group is a private circle of friends sharing one match ledger.
type Group struct {
	ID          string
	Name        string
	OwnerUserID string
	InviteCode  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (g Group) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("group id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	if g.OwnerUserID == "" {
		return fmt.Errorf("group owner is required")
	}
	if g.InviteCode == "" {
		return fmt.Errorf("group invite code is required")
	}

	return nil
}

// Membership ties a user account to a group, optionally linked to the
// player entry that represents them on the ledger.
type Membership struct {
	GroupID  string
	UserID   string
	PlayerID string
	JoinedAt time.Time
}

func (m Membership) Validate() error {
	if m.GroupID == "" {
		return fmt.Errorf("membership group id is required")
	}
	if m.UserID == "" {
		return fmt.Errorf("membership user id is required")
	}

	return nil
}
