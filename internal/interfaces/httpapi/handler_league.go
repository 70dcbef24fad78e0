package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/GRD-Daddi/league-page/internal/usecase"
)

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	league, err := h.platformService.LeagueData(ctx, authedClientFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get league failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, league)
}

func (h *Handler) GetRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosters")
	defer span.End()

	rosters, err := h.platformService.Rosters(ctx, authedClientFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get rosters failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, rosters)
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUsers")
	defer span.End()

	users, err := h.platformService.Users(ctx, authedClientFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get users failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, users)
}

func (h *Handler) GetMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchups")
	defer span.End()

	week, err := h.weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchups, err := h.platformService.MatchupsForWeek(ctx, authedClientFromContext(ctx), week)
	if err != nil {
		h.logger.ErrorContext(ctx, "get matchups failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, matchups)
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTransactions")
	defer span.End()

	week, err := h.weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	transactions, err := h.platformService.TransactionsForWeek(ctx, authedClientFromContext(ctx), week)
	if err != nil {
		h.logger.ErrorContext(ctx, "get transactions failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, transactions)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	draft, err := h.platformService.DraftData(ctx, authedClientFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, draft)
}

func (h *Handler) GetDraftPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftPicks")
	defer span.End()

	picks, err := h.platformService.DraftPicks(ctx, authedClientFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get draft picks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, picks)
}

func (h *Handler) GetTradedPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTradedPicks")
	defer span.End()

	picks, err := h.platformService.TradedPicks(ctx, authedClientFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get traded picks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, picks)
}

func (h *Handler) GetWinnersBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWinnersBracket")
	defer span.End()

	bracket, err := h.platformService.WinnersBracket(ctx, authedClientFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get winners bracket failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, bracket)
}

func (h *Handler) GetLosersBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLosersBracket")
	defer span.End()

	bracket, err := h.platformService.LosersBracket(ctx, authedClientFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get losers bracket failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, bracket)
}

func (h *Handler) GetSportState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSportState")
	defer span.End()

	state, err := h.platformService.SportState(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get sport state failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, state)
}

func (h *Handler) GetAllPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAllPlayers")
	defer span.End()

	players, err := h.platformService.AllPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, players)
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	playerKey := strings.TrimSpace(r.PathValue("playerKey"))
	if playerKey == "" {
		writeError(ctx, w, fmt.Errorf("%w: player key is required", usecase.ErrInvalidInput))
		return
	}

	// Week is optional. Without it the season-long totals come back.
	week := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("week")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidInput))
			return
		}
		if err := h.validator.Struct(weekParam{Week: parsed}); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: week %d is out of range", usecase.ErrInvalidInput, parsed))
			return
		}
		week = parsed
	}

	stats, err := h.platformService.PlayerStats(ctx, authedClientFromContext(ctx), playerKey, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "get player stats failed", "player_key", playerKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, stats)
}
