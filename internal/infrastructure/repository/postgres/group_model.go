package postgres

import (
	"database/sql"
	"time"
)

type groupTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	OwnerUserID string    `db:"owner_user_id"`
	InviteCode  string    `db:"invite_code"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type groupInsertModel struct {
	PublicID    string `db:"public_id"`
	Name        string `db:"name"`
	OwnerUserID string `db:"owner_user_id"`
	InviteCode  string `db:"invite_code"`
}

type groupMemberTableModel struct {
	ID       int64          `db:"id"`
	GroupID  string         `db:"group_id"`
	UserID   string         `db:"user_id"`
	PlayerID sql.NullString `db:"player_id"`
	JoinedAt time.Time      `db:"joined_at"`
}

type groupMemberInsertModel struct {
	GroupID  string         `db:"group_id"`
	UserID   string         `db:"user_id"`
	PlayerID sql.NullString `db:"player_id"`
	JoinedAt time.Time      `db:"joined_at"`
}
