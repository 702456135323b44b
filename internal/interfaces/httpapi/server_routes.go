package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedGroupRoutes(mux, handler, verifier)
	registerAuthorizedPlayerRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
	registerAuthorizedStatsRoutes(mux, handler, verifier)
}

func registerAuthorizedGroupRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/groups", RequireAuth(verifier, http.HandlerFunc(handler.CreateGroup)))
	mux.Handle("GET /v1/groups", RequireAuth(verifier, http.HandlerFunc(handler.ListMyGroups)))
	mux.Handle("POST /v1/groups/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinGroupByInvite)))
	mux.Handle("GET /v1/groups/{groupID}/seasons", RequireAuth(verifier, http.HandlerFunc(handler.ListSeasons)))
}

func registerAuthorizedPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/groups/{groupID}/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("GET /v1/groups/{groupID}/players", RequireAuth(verifier, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("GET /v1/groups/{groupID}/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayer)))
	mux.Handle("DELETE /v1/groups/{groupID}/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePlayer)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/groups/{groupID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.RecordMatch)))
	mux.Handle("GET /v1/groups/{groupID}/players/{playerID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListPlayerMatches)))
}

func registerAuthorizedStatsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/groups/{groupID}/players/{playerID}/rating", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayerRating)))
	mux.Handle("GET /v1/groups/{groupID}/players/{playerID}/rating/history", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayerRatingHistory)))
	mux.Handle("GET /v1/groups/{groupID}/players/{playerID}/streaks", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayerStreaks)))
	mux.Handle("GET /v1/groups/{groupID}/players/{playerID}/relationships", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayerRelationships)))
	mux.Handle("GET /v1/groups/{groupID}/seasons/{seasonID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetSeasonLeaderboard)))
}
