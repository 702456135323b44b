package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/torryt/foos-and-friends-sub002/internal/domain/rating"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/relationship"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/streak"
	"github.com/torryt/foos-and-friends-sub002/internal/usecase"
)

type playerRatingDTO struct {
	PlayerID string  `json:"playerId"`
	Rating   float64 `json:"rating"`
	Games    int     `json:"games"`
	AsOf     *string `json:"asOf,omitempty"`
}

type ratingChangeDTO struct {
	MatchID  string  `json:"matchId"`
	PlayedAt string  `json:"playedAt"`
	Before   float64 `json:"before"`
	After    float64 `json:"after"`
	Delta    float64 `json:"delta"`
}

type streakDTO struct {
	Current       string `json:"current"`
	CurrentLength int    `json:"currentLength"`
	BestWin       int    `json:"bestWin"`
	WorstLoss     int    `json:"worstLoss"`
}

type relationshipStatsDTO struct {
	PlayerID string  `json:"playerId"`
	Games    int     `json:"games"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Draws    int     `json:"draws"`
	WinRate  float64 `json:"winRate"`
	Form     string  `json:"form,omitempty"`
}

type relationshipReportDTO struct {
	PlayerID        string                 `json:"playerId"`
	Teammates       []relationshipStatsDTO `json:"teammates"`
	Opponents       []relationshipStatsDTO `json:"opponents"`
	BestTeammate    string                 `json:"bestTeammate,omitempty"`
	WorstTeammate   string                 `json:"worstTeammate,omitempty"`
	EasiestOpponent string                 `json:"easiestOpponent,omitempty"`
	HardestOpponent string                 `json:"hardestOpponent,omitempty"`
}

type seasonStandingDTO struct {
	Rank           int     `json:"rank"`
	PlayerID       string  `json:"playerId"`
	DisplayName    string  `json:"displayName"`
	Played         int     `json:"played"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Draws          int     `json:"draws"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
	Rating         float64 `json:"rating"`
}

func (h *Handler) GetPlayerRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerRating")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var asOf *time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("as_of")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: as_of must be RFC 3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		asOf = &parsed
	}

	current, err := h.ratingService.PlayerRating(ctx, principal.UserID, groupID, playerID, asOf)
	if err != nil {
		h.logger.WarnContext(ctx, "get player rating failed", "user_id", principal.UserID, "group_id", groupID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerRatingToDTO(ctx, current))
}

func (h *Handler) GetPlayerRatingHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerRatingHistory")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	changes, err := h.ratingService.RatingHistory(ctx, principal.UserID, groupID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get rating history failed", "user_id", principal.UserID, "group_id", groupID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]ratingChangeDTO, 0, len(changes))
	for _, c := range changes {
		items = append(items, ratingChangeToDTO(ctx, c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStreaks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	data, err := h.streakService.PlayerStreaks(ctx, principal.UserID, groupID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player streaks failed", "user_id", principal.UserID, "group_id", groupID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, streakToDTO(ctx, data))
}

func (h *Handler) GetPlayerRelationships(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerRelationships")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	report, err := h.relationshipService.PlayerRelationships(ctx, principal.UserID, groupID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player relationships failed", "user_id", principal.UserID, "group_id", groupID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, relationshipReportToDTO(ctx, report))
}

func (h *Handler) GetSeasonLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonLeaderboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))
	seasonID := strings.TrimSpace(r.PathValue("seasonID"))

	standings, err := h.leaderboardService.SeasonLeaderboard(ctx, principal.UserID, groupID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season leaderboard failed", "user_id", principal.UserID, "group_id", groupID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonStandingDTO, 0, len(standings))
	for _, row := range standings {
		items = append(items, seasonStandingToDTO(ctx, row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func playerRatingToDTO(ctx context.Context, v usecase.PlayerRating) playerRatingDTO {
	ctx, span := startSpan(ctx, "httpapi.playerRatingToDTO")
	defer span.End()

	dto := playerRatingDTO{
		PlayerID: v.PlayerID,
		Rating:   v.Rating,
		Games:    v.Games,
	}
	if v.AsOf != nil {
		asOf := v.AsOf.UTC().Format(time.RFC3339)
		dto.AsOf = &asOf
	}

	return dto
}

func ratingChangeToDTO(ctx context.Context, v rating.Change) ratingChangeDTO {
	ctx, span := startSpan(ctx, "httpapi.ratingChangeToDTO")
	defer span.End()

	return ratingChangeDTO{
		MatchID:  v.MatchID,
		PlayedAt: v.PlayedAt.UTC().Format(time.RFC3339),
		Before:   v.Before,
		After:    v.After,
		Delta:    v.Delta,
	}
}

func streakToDTO(ctx context.Context, v streak.Data) streakDTO {
	ctx, span := startSpan(ctx, "httpapi.streakToDTO")
	defer span.End()

	return streakDTO{
		Current:       string(v.Current),
		CurrentLength: v.CurrentLength,
		BestWin:       v.BestWin,
		WorstLoss:     v.WorstLoss,
	}
}

func relationshipReportToDTO(ctx context.Context, v relationship.Report) relationshipReportDTO {
	ctx, span := startSpan(ctx, "httpapi.relationshipReportToDTO")
	defer span.End()

	toStats := func(in []relationship.Stats) []relationshipStatsDTO {
		out := make([]relationshipStatsDTO, 0, len(in))
		for _, s := range in {
			out = append(out, relationshipStatsDTO{
				PlayerID: s.PlayerID,
				Games:    s.Games,
				Wins:     s.Wins,
				Losses:   s.Losses,
				Draws:    s.Draws,
				WinRate:  s.WinRate(),
				Form:     s.Form,
			})
		}
		return out
	}

	return relationshipReportDTO{
		PlayerID:        v.PlayerID,
		Teammates:       toStats(v.Teammates),
		Opponents:       toStats(v.Opponents),
		BestTeammate:    v.BestTeammate,
		WorstTeammate:   v.WorstTeammate,
		EasiestOpponent: v.EasiestOpponent,
		HardestOpponent: v.HardestOpponent,
	}
}

func seasonStandingToDTO(ctx context.Context, v usecase.SeasonStanding) seasonStandingDTO {
	ctx, span := startSpan(ctx, "httpapi.seasonStandingToDTO")
	defer span.End()

	return seasonStandingDTO{
		Rank:           v.Rank,
		PlayerID:       v.PlayerID,
		DisplayName:    v.DisplayName,
		Played:         v.Played,
		Wins:           v.Wins,
		Losses:         v.Losses,
		Draws:          v.Draws,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Rating:         v.Rating,
	}
}
