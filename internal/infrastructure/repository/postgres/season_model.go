package postgres

import "time"

type seasonTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	GroupID    string     `db:"group_id"`
	Name       string     `db:"name"`
	IsActive   bool       `db:"is_active"`
	StartedAt  time.Time  `db:"started_at"`
	ArchivedAt *time.Time `db:"archived_at"`
}

type seasonInsertModel struct {
	PublicID  string    `db:"public_id"`
	GroupID   string    `db:"group_id"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	StartedAt time.Time `db:"started_at"`
}
