package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/soltomm/PinoGPT/internal/api/handler"
	"github.com/soltomm/PinoGPT/internal/api/middleware"
	"github.com/soltomm/PinoGPT/internal/services/balancer"
	"github.com/soltomm/PinoGPT/internal/services/game"
	"github.com/soltomm/PinoGPT/internal/services/roster"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	RosterService   roster.ServiceInterface
	BalancerService balancer.ServiceInterface
	GameController  game.ControllerInterface
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.RosterService)
	teamHandler := handler.NewTeamHandler(cfg.RosterService, cfg.BalancerService)
	gameHandler := handler.NewGameHandler(cfg.GameController)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes
	api.HandleFunc("/players", playerHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/players/{name}", playerHandler.Remove).Methods(http.MethodDelete)

	// Team routes
	api.HandleFunc("/teams/propose", teamHandler.Propose).Methods(http.MethodPost)

	// Game routes. Fixed paths are registered before the {id} routes so
	// "manual", "pending" and "history" never match as game IDs.
	api.HandleFunc("/games", gameHandler.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/games/manual", gameHandler.Manual).Methods(http.MethodPost)
	api.HandleFunc("/games/pending", gameHandler.Pending).Methods(http.MethodGet)
	api.HandleFunc("/games/history", gameHandler.History).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/score", gameHandler.Score).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
