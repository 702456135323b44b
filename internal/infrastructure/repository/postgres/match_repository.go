package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	qb "github.com/torryt/foos-and-friends-sub002/internal/platform/querybuilder"
)

// MatchRepository persists the append-only ledger. matches.id is the global
// sequence number; rows are never updated or deleted.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Append(ctx context.Context, m match.Match) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx append match: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	insertModel := matchInsertModel{
		PublicID:   m.ID,
		GroupID:    m.GroupID,
		SeasonID:   m.SeasonID,
		MatchType:  string(m.Type),
		Score1:     m.Score1,
		Score2:     m.Score2,
		PlayedAt:   m.PlayedAt,
		RecordedBy: m.RecordedBy,
		CreatedAt:  createdAt,
	}
	query, args, err := qb.InsertModel("matches", insertModel, "RETURNING id")
	if err != nil {
		return match.Match{}, fmt.Errorf("build append match query: %w", err)
	}
	var seq int64
	if err := tx.GetContext(ctx, &seq, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("append match: %w", err)
	}

	stats := make(map[string]match.PlayerStat, len(m.PlayerStats))
	for _, ps := range m.PlayerStats {
		stats[ps.PlayerID] = ps
	}

	builder := qb.InsertInto("match_players").
		Columns("match_id", "team", "slot", "player_id", "rating_before", "rating_after")
	appendTeam := func(team int, players []string) {
		for slot, playerID := range players {
			before := sql.NullFloat64{}
			after := sql.NullFloat64{}
			if ps, ok := stats[playerID]; ok {
				before = sql.NullFloat64{Float64: ps.RatingBefore, Valid: true}
				after = sql.NullFloat64{Float64: ps.RatingAfter, Valid: true}
			}
			builder.Values(m.ID, team, slot, playerID, before, after)
		}
	}
	appendTeam(1, m.Team1.Players)
	appendTeam(2, m.Team2.Players)

	playersQuery, playersArgs, err := builder.ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build append match players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, playersQuery, playersArgs...); err != nil {
		return match.Match{}, fmt.Errorf("append match players: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit append match: %w", err)
	}

	m.Seq = seq
	m.CreatedAt = createdAt

	return m, nil
}

func (r *MatchRepository) ListByGroup(ctx context.Context, groupID string) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("group_id", groupID))
}

func (r *MatchRepository) ListBySeason(ctx context.Context, groupID, seasonID string) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("group_id", groupID), qb.Eq("season_id", seasonID))
}

func (r *MatchRepository) ListByPlayer(ctx context.Context, groupID, playerID string) ([]match.Match, error) {
	return r.list(ctx,
		qb.Eq("group_id", groupID),
		qb.Expr("public_id IN (SELECT match_id FROM match_players WHERE player_id = ?)", playerID),
	)
}

func (r *MatchRepository) ListByGroupUntil(ctx context.Context, groupID string, cutoff time.Time) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("group_id", groupID), qb.Lte("played_at", cutoff))
}

func (r *MatchRepository) CountByPlayer(ctx context.Context, groupID, playerID string) (int, error) {
	query := `SELECT COUNT(*) FROM matches m
JOIN match_players mp ON mp.match_id = m.public_id
WHERE m.group_id = $1 AND mp.player_id = $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, groupID, playerID); err != nil {
		return 0, fmt.Errorf("count matches by player: %w", err)
	}

	return count, nil
}

func (r *MatchRepository) Version(ctx context.Context, groupID string) (int64, error) {
	var version int64
	if err := r.db.GetContext(ctx, &version,
		"SELECT COALESCE(MAX(id), 0) FROM matches WHERE group_id = $1", groupID); err != nil {
		return 0, fmt.Errorf("get ledger version: %w", err)
	}

	return version, nil
}

func (r *MatchRepository) list(ctx context.Context, conditions ...qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("played_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if len(rows) == 0 {
		return []match.Match{}, nil
	}

	players, err := r.loadPlayers(ctx, rows)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row, players[row.PublicID]))
	}

	return out, nil
}

func (r *MatchRepository) loadPlayers(ctx context.Context, matches []matchTableModel) (map[string][]matchPlayerTableModel, error) {
	ids := make([]any, 0, len(matches))
	for _, row := range matches {
		ids = append(ids, row.PublicID)
	}

	query, args, err := qb.Select("*").From("match_players").
		Where(qb.In("match_id", ids)).
		OrderBy("match_id", "team", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match players query: %w", err)
	}

	var rows []matchPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match players: %w", err)
	}

	out := make(map[string][]matchPlayerTableModel, len(matches))
	for _, row := range rows {
		out[row.MatchID] = append(out[row.MatchID], row)
	}

	return out, nil
}

func matchFromRow(row matchTableModel, players []matchPlayerTableModel) match.Match {
	m := match.Match{
		ID:         row.PublicID,
		GroupID:    row.GroupID,
		SeasonID:   row.SeasonID,
		Type:       match.Type(row.MatchType),
		Score1:     row.Score1,
		Score2:     row.Score2,
		PlayedAt:   row.PlayedAt,
		Seq:        row.ID,
		RecordedBy: row.RecordedBy,
		CreatedAt:  row.CreatedAt,
	}
	for _, p := range players {
		if p.Team == 1 {
			m.Team1.Players = append(m.Team1.Players, p.PlayerID)
		} else {
			m.Team2.Players = append(m.Team2.Players, p.PlayerID)
		}
		if p.RatingBefore.Valid && p.RatingAfter.Valid {
			m.PlayerStats = append(m.PlayerStats, match.PlayerStat{
				PlayerID:     p.PlayerID,
				RatingBefore: p.RatingBefore.Float64,
				RatingAfter:  p.RatingAfter.Float64,
			})
		}
	}

	return m
}
