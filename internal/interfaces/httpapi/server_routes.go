package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/weeks/{week}/matchups", handler.GetWeekMatchups)
	mux.HandleFunc("GET /v1/weeks/{week}/matchups/{matchupId}/reconcile", handler.ReconcileWeekMatchup)
	mux.HandleFunc("GET /v1/cache/stats", handler.GetCacheStats)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalAdminToken string) {
	mux.Handle("POST /v1/internal/cache/clear", RequireInternalAdminToken(internalAdminToken, http.HandlerFunc(handler.ClearCaches)))
}
