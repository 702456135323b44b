package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/torryt/foos-and-friends-sub002/internal/usecase"
)

type recordMatchRequest struct {
	SeasonID string   `json:"seasonId" validate:"omitempty"`
	Type     string   `json:"type" validate:"required,oneof=1v1 2v2"`
	Team1    []string `json:"team1" validate:"required,min=1,max=2,dive,required"`
	Team2    []string `json:"team2" validate:"required,min=1,max=2,dive,required"`
	Score1   int      `json:"score1" validate:"min=0"`
	Score2   int      `json:"score2" validate:"min=0"`
	PlayedAt string   `json:"playedAt" validate:"omitempty"`
}

func (h *Handler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))

	var req recordMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var playedAt time.Time
	if req.PlayedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.PlayedAt)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: playedAt must be RFC 3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		playedAt = parsed
	}

	recorded, err := h.matchService.RecordMatch(ctx, principal.UserID, usecase.RecordMatchInput{
		GroupID:  groupID,
		SeasonID: req.SeasonID,
		Type:     req.Type,
		Team1:    req.Team1,
		Team2:    req.Team2,
		Score1:   req.Score1,
		Score2:   req.Score2,
		PlayedAt: playedAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match failed", "user_id", principal.UserID, "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, recorded))
}

func (h *Handler) ListPlayerMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerMatches")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	matches, err := h.matchService.PlayerMatches(ctx, principal.UserID, groupID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player matches failed", "user_id", principal.UserID, "group_id", groupID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
