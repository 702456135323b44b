package memory

import (
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/player"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/season"
)

// Demo fixtures for running without a database.
const (
	GroupIDDemo  = "demo-office"
	SeasonIDDemo = "demo-office-season-1"
	UserIDDemo   = "demo-user"
)

func SeedGroups() []group.Group {
	createdAt := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	return []group.Group{
		{
			ID:          GroupIDDemo,
			Name:        "Office Foosball",
			OwnerUserID: UserIDDemo,
			InviteCode:  "FOOSDEMO",
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		},
	}
}

func SeedMemberships() []group.Membership {
	return []group.Membership{
		{GroupID: GroupIDDemo, UserID: UserIDDemo, JoinedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)},
	}
}

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:        SeasonIDDemo,
			GroupID:   GroupIDDemo,
			Name:      "Season 1",
			IsActive:  true,
			StartedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		},
	}
}

func SeedPlayers() []player.Player {
	createdAt := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	return []player.Player{
		{ID: "demo-alice", GroupID: GroupIDDemo, DisplayName: "Alice", CreatedAt: createdAt},
		{ID: "demo-bob", GroupID: GroupIDDemo, DisplayName: "Bob", CreatedAt: createdAt},
		{ID: "demo-carol", GroupID: GroupIDDemo, DisplayName: "Carol", CreatedAt: createdAt},
		{ID: "demo-dave", GroupID: GroupIDDemo, DisplayName: "Dave", CreatedAt: createdAt},
	}
}
