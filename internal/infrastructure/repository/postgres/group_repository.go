package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	qb "github.com/torryt/foos-and-friends-sub002/internal/platform/querybuilder"
)

type GroupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, g group.Group) error {
	insertModel := groupInsertModel{
		PublicID:    g.ID,
		Name:        g.Name,
		OwnerUserID: g.OwnerUserID,
		InviteCode:  g.InviteCode,
	}
	query, args, err := qb.InsertModel("groups", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create group query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", groupID))
}

func (r *GroupRepository) GetByInviteCode(ctx context.Context, inviteCode string) (group.Group, bool, error) {
	return r.getOne(ctx, qb.Eq("invite_code", inviteCode))
}

func (r *GroupRepository) getOne(ctx context.Context, cond qb.Condition) (group.Group, bool, error) {
	query, args, err := qb.Select("*").From("groups").
		Where(cond).
		ToSQL()
	if err != nil {
		return group.Group{}, false, fmt.Errorf("build get group query: %w", err)
	}

	var row groupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return group.Group{}, false, nil
		}
		return group.Group{}, false, fmt.Errorf("get group: %w", err)
	}

	return groupFromRow(row), true, nil
}

func (r *GroupRepository) ListByUser(ctx context.Context, userID string) ([]group.Group, error) {
	query, args, err := qb.Select("g.*").From("groups g").
		Where(qb.Expr("g.public_id IN (SELECT group_id FROM group_members WHERE user_id = ?)", userID)).
		OrderBy("g.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list groups by user query: %w", err)
	}

	var rows []groupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list groups by user: %w", err)
	}

	out := make([]group.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, groupFromRow(row))
	}

	return out, nil
}

func (r *GroupRepository) AddMember(ctx context.Context, m group.Membership) error {
	insertModel := groupMemberInsertModel{
		GroupID:  m.GroupID,
		UserID:   m.UserID,
		PlayerID: toNullString(m.PlayerID),
		JoinedAt: m.JoinedAt,
	}
	query, args, err := qb.InsertModel("group_members", insertModel, "ON CONFLICT (group_id, user_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build add member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	return nil
}

func (r *GroupRepository) GetMembership(ctx context.Context, groupID, userID string) (group.Membership, bool, error) {
	query, args, err := qb.Select("*").From("group_members").
		Where(
			qb.Eq("group_id", groupID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return group.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row groupMemberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return group.Membership{}, false, nil
		}
		return group.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}

	return membershipFromRow(row), true, nil
}

func (r *GroupRepository) ListMembers(ctx context.Context, groupID string) ([]group.Membership, error) {
	query, args, err := qb.Select("*").From("group_members").
		Where(qb.Eq("group_id", groupID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members query: %w", err)
	}

	var rows []groupMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]group.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}

	return out, nil
}

func groupFromRow(row groupTableModel) group.Group {
	return group.Group{
		ID:          row.PublicID,
		Name:        row.Name,
		OwnerUserID: row.OwnerUserID,
		InviteCode:  row.InviteCode,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func membershipFromRow(row groupMemberTableModel) group.Membership {
	return group.Membership{
		GroupID:  row.GroupID,
		UserID:   row.UserID,
		PlayerID: nullStringToString(row.PlayerID),
		JoinedAt: row.JoinedAt,
	}
}
