package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/libroquest/gamebook-server/internal/api/handler"
	"github.com/libroquest/gamebook-server/internal/api/middleware"
	"github.com/libroquest/gamebook-server/internal/services/auth"
	"github.com/libroquest/gamebook-server/internal/services/profile"
	"github.com/libroquest/gamebook-server/internal/services/progression"
	"github.com/libroquest/gamebook-server/internal/services/view"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	ProgressionService *progression.Service
	ProfileService     *profile.Service
	Assembler          *view.Assembler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	meHandler := handler.NewMeHandler(cfg.Assembler, cfg.ProgressionService, cfg.ProfileService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for registering/logging in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Player routes (all require auth)
	me := api.PathPrefix("/me").Subrouter()
	me.Use(authMiddleware)
	me.HandleFunc("", meHandler.GetMe).Methods(http.MethodGet)
	me.HandleFunc("", meHandler.UpdateMe).Methods(http.MethodPut)
	me.HandleFunc("/complete-level", meHandler.CompleteLevel).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
