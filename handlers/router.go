package handlers

import (
	"net/http"

	"tournament/middleware"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	gorillahandlers "github.com/gorilla/handlers"
)

type RouterConfig struct {
	Teams    *TeamHandler
	Admin    *AdminHandler
	Auth     *AuthHandler
	Health   *HealthHandler
	Sessions *middleware.SessionManager
	Logger   *log.Logger

	// AllowedOrigins enables CORS with credentials for these origins.
	AllowedOrigins []string
	MaxBodyBytes   int64
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logging(cfg.Logger.WithPrefix("http")))
	router.Use(chimiddleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins(cfg.AllowedOrigins),
			gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}),
			gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
			gorillahandlers.AllowCredentials(),
		))
	}
	router.Use(middleware.LimitBody(cfg.MaxBodyBytes))

	router.Get("/healthz", cfg.Health.Health)

	// Public routes
	router.Get("/api/tournaments", cfg.Teams.Tournaments)
	router.Get("/api/teams", cfg.Teams.List)
	router.Post("/api/teams", cfg.Teams.Register)
	router.Get("/api/teams/count", cfg.Teams.Count)
	router.Get("/api/teams/count/{gameType}", cfg.Teams.CountByGameType)
	router.Get("/api/teams/{id}", cfg.Teams.Get)
	router.Post("/api/admin/login", cfg.Auth.Login)

	// Admin routes
	router.Group(func(r chi.Router) {
		r.Use(cfg.Sessions.RequireSession)

		r.Get("/api/teams/search", cfg.Teams.Search)

		r.Post("/api/admin/logout", cfg.Auth.Logout)
		r.Get("/api/admin/me", cfg.Auth.Me)
		r.Patch("/api/admin/password", cfg.Auth.ChangePassword)

		r.Get("/api/admin/stats", cfg.Admin.Stats)
		r.Patch("/api/admin/teams/{id}/status", cfg.Admin.UpdateStatus)
		r.Patch("/api/admin/teams/{id}/notes", cfg.Admin.UpdateNotes)
		r.Post("/api/admin/teams/bulk-status", cfg.Admin.BulkUpdateStatus)
		r.Get("/api/admin/teams/export", cfg.Admin.Export)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})

	return router
}
