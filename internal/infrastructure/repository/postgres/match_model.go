package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	GroupID    string    `db:"group_id"`
	SeasonID   string    `db:"season_id"`
	MatchType  string    `db:"match_type"`
	Score1     int       `db:"score1"`
	Score2     int       `db:"score2"`
	PlayedAt   time.Time `db:"played_at"`
	RecordedBy string    `db:"recorded_by"`
	CreatedAt  time.Time `db:"created_at"`
}

type matchInsertModel struct {
	PublicID   string    `db:"public_id"`
	GroupID    string    `db:"group_id"`
	SeasonID   string    `db:"season_id"`
	MatchType  string    `db:"match_type"`
	Score1     int       `db:"score1"`
	Score2     int       `db:"score2"`
	PlayedAt   time.Time `db:"played_at"`
	RecordedBy string    `db:"recorded_by"`
	CreatedAt  time.Time `db:"created_at"`
}

type matchPlayerTableModel struct {
	ID           int64           `db:"id"`
	MatchID      string          `db:"match_id"`
	Team         int             `db:"team"`
	Slot         int             `db:"slot"`
	PlayerID     string          `db:"player_id"`
	RatingBefore sql.NullFloat64 `db:"rating_before"`
	RatingAfter  sql.NullFloat64 `db:"rating_after"`
}
