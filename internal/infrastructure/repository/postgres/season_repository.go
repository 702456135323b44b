package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/season"
	qb "github.com/torryt/foos-and-friends-sub002/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	insertModel := seasonInsertModel{
		PublicID:  s.ID,
		GroupID:   s.GroupID,
		Name:      s.Name,
		IsActive:  s.IsActive,
		StartedAt: s.StartedAt,
	}
	query, args, err := qb.InsertModel("seasons", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create season: %w", err)
	}

	return nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("public_id", seasonID)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}

	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) ListByGroup(ctx context.Context, groupID string) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("group_id", groupID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}

	return out, nil
}

func (r *SeasonRepository) GetActiveByGroup(ctx context.Context, groupID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("group_id", groupID),
			qb.Eq("is_active", true),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get active season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get active season: %w", err)
	}

	return seasonFromRow(row), true, nil
}

// SetActive flips the group's active season inside one transaction so the
// at-most-one-active invariant holds.
func (r *SeasonRepository) SetActive(ctx context.Context, groupID, seasonID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx set active season: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	archiveQuery, archiveArgs, err := qb.Update("seasons").
		Set("is_active", false).
		Set("archived_at", time.Now().UTC()).
		Where(
			qb.Eq("group_id", groupID),
			qb.Eq("is_active", true),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build archive seasons query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, archiveQuery, archiveArgs...); err != nil {
		return fmt.Errorf("archive seasons: %w", err)
	}

	activateQuery, activateArgs, err := qb.Update("seasons").
		Set("is_active", true).
		Set("archived_at", nil).
		Where(
			qb.Eq("public_id", seasonID),
			qb.Eq("group_id", groupID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build activate season query: %w", err)
	}
	result, err := tx.ExecContext(ctx, activateQuery, activateArgs...)
	if err != nil {
		return fmt.Errorf("activate season: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected activate season: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("activate season: not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set active season: %w", err)
	}

	return nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:         row.PublicID,
		GroupID:    row.GroupID,
		Name:       row.Name,
		IsActive:   row.IsActive,
		StartedAt:  row.StartedAt,
		ArchivedAt: row.ArchivedAt,
	}
}
