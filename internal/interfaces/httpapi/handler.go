package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/player"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/season"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/logging"
	"github.com/torryt/foos-and-friends-sub002/internal/usecase"
)

type Handler struct {
	groupService        *usecase.GroupService
	playerService       *usecase.PlayerService
	matchService        *usecase.MatchService
	ratingService       *usecase.RatingService
	leaderboardService  *usecase.LeaderboardService
	streakService       *usecase.StreakService
	relationshipService *usecase.RelationshipService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	groupService *usecase.GroupService,
	playerService *usecase.PlayerService,
	matchService *usecase.MatchService,
	ratingService *usecase.RatingService,
	leaderboardService *usecase.LeaderboardService,
	streakService *usecase.StreakService,
	relationshipService *usecase.RelationshipService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		groupService:        groupService,
		playerService:       playerService,
		matchService:        matchService,
		ratingService:       ratingService,
		leaderboardService:  leaderboardService,
		streakService:       streakService,
		relationshipService: relationshipService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type groupDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerUserID string `json:"ownerUserId"`
	InviteCode  string `json:"inviteCode"`
	CreatedAt   string `json:"createdAt"`
}

type seasonDTO struct {
	ID         string  `json:"id"`
	GroupID    string  `json:"groupId"`
	Name       string  `json:"name"`
	IsActive   bool    `json:"isActive"`
	StartedAt  string  `json:"startedAt"`
	ArchivedAt *string `json:"archivedAt,omitempty"`
}

type playerDTO struct {
	ID          string `json:"id"`
	GroupID     string `json:"groupId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type matchDTO struct {
	ID          string           `json:"id"`
	GroupID     string           `json:"groupId"`
	SeasonID    string           `json:"seasonId"`
	Type        string           `json:"type"`
	Team1       []string         `json:"team1"`
	Team2       []string         `json:"team2"`
	Score1      int              `json:"score1"`
	Score2      int              `json:"score2"`
	PlayerStats []playerStatDTO  `json:"playerStats,omitempty"`
	PlayedAt    string           `json:"playedAt"`
	Seq         int64            `json:"seq"`
	RecordedBy  string           `json:"recordedBy"`
}

type playerStatDTO struct {
	PlayerID     string  `json:"playerId"`
	RatingBefore float64 `json:"ratingBefore"`
	RatingAfter  float64 `json:"ratingAfter"`
}

func groupToDTO(ctx context.Context, v group.Group) groupDTO {
	ctx, span := startSpan(ctx, "httpapi.groupToDTO")
	defer span.End()

	return groupDTO{
		ID:          v.ID,
		Name:        v.Name,
		OwnerUserID: v.OwnerUserID,
		InviteCode:  v.InviteCode,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func seasonToDTO(ctx context.Context, v season.Season) seasonDTO {
	ctx, span := startSpan(ctx, "httpapi.seasonToDTO")
	defer span.End()

	dto := seasonDTO{
		ID:        v.ID,
		GroupID:   v.GroupID,
		Name:      v.Name,
		IsActive:  v.IsActive,
		StartedAt: v.StartedAt.UTC().Format(time.RFC3339),
	}
	if v.ArchivedAt != nil {
		archived := v.ArchivedAt.UTC().Format(time.RFC3339)
		dto.ArchivedAt = &archived
	}

	return dto
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:          v.ID,
		GroupID:     v.GroupID,
		DisplayName: v.DisplayName,
		AvatarURL:   v.AvatarURL,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	stats := make([]playerStatDTO, 0, len(v.PlayerStats))
	for _, ps := range v.PlayerStats {
		stats = append(stats, playerStatDTO{
			PlayerID:     ps.PlayerID,
			RatingBefore: ps.RatingBefore,
			RatingAfter:  ps.RatingAfter,
		})
	}

	return matchDTO{
		ID:          v.ID,
		GroupID:     v.GroupID,
		SeasonID:    v.SeasonID,
		Type:        string(v.Type),
		Team1:       append([]string(nil), v.Team1.Players...),
		Team2:       append([]string(nil), v.Team2.Players...),
		Score1:      v.Score1,
		Score2:      v.Score2,
		PlayerStats: stats,
		PlayedAt:    v.PlayedAt.UTC().Format(time.RFC3339),
		Seq:         v.Seq,
		RecordedBy:  v.RecordedBy,
	}
}
