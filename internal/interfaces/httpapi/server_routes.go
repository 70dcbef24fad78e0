package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /auth/login", handler.Login)
	mux.HandleFunc("GET /auth/callback", handler.AuthCallback)
	mux.HandleFunc("GET /auth/logout", handler.Logout)
	mux.HandleFunc("GET /auth/session", handler.SessionInfo)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/league", handler.GetLeague)
	mux.HandleFunc("GET /v1/league/rosters", handler.GetRosters)
	mux.HandleFunc("GET /v1/league/users", handler.GetUsers)
	mux.HandleFunc("GET /v1/league/matchups/{week}", handler.GetMatchups)
	mux.HandleFunc("GET /v1/league/transactions/{week}", handler.GetTransactions)
	mux.HandleFunc("GET /v1/league/draft", handler.GetDraft)
	mux.HandleFunc("GET /v1/league/draft/picks", handler.GetDraftPicks)
	mux.HandleFunc("GET /v1/league/draft/traded-picks", handler.GetTradedPicks)
	mux.HandleFunc("GET /v1/league/winners-bracket", handler.GetWinnersBracket)
	mux.HandleFunc("GET /v1/league/losers-bracket", handler.GetLosersBracket)
	mux.HandleFunc("GET /v1/state", handler.GetSportState)
	mux.HandleFunc("GET /v1/players", handler.GetAllPlayers)
	mux.HandleFunc("GET /v1/players/{playerKey}/stats", handler.GetPlayerStats)
}
