package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	GroupID     string         `db:"group_id"`
	DisplayName string         `db:"display_name"`
	AvatarURL   sql.NullString `db:"avatar_url"`
	CreatedAt   time.Time      `db:"created_at"`
}

type playerInsertModel struct {
	PublicID    string         `db:"public_id"`
	GroupID     string         `db:"group_id"`
	DisplayName string         `db:"display_name"`
	AvatarURL   sql.NullString `db:"avatar_url"`
}
