package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/handler"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/middleware"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/ws"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/auth"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/memories"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/pairing"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/playground"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	PairingService   *pairing.Service
	MemoriesService  *memories.Service
	PlaygroundServer *playground.Server
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	pairHandler := handler.NewPairHandler(cfg.PairingService)
	memoriesHandler := handler.NewMemoriesHandler(cfg.MemoriesService)
	wsHandler := ws.NewHandler(cfg.PlaygroundServer, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for registering/logging in)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/me", playerHandler.UpdateProfile).Methods(http.MethodPatch)

	// Pairing routes (all require auth)
	pairs := api.PathPrefix("/pairs").Subrouter()
	pairs.Use(authMiddleware)
	pairs.HandleFunc("/code", pairHandler.CreateCode).Methods(http.MethodPost)
	pairs.HandleFunc("/redeem", pairHandler.Redeem).Methods(http.MethodPost)
	pairs.HandleFunc("/me", pairHandler.GetMe).Methods(http.MethodGet)
	pairs.HandleFunc("/me", pairHandler.Unpair).Methods(http.MethodDelete)

	// Shared memories routes (all require auth)
	mem := api.PathPrefix("/memories").Subrouter()
	mem.Use(authMiddleware)
	mem.HandleFunc("/notes", memoriesHandler.CreateNote).Methods(http.MethodPost)
	mem.HandleFunc("/notes", memoriesHandler.ListNotes).Methods(http.MethodGet)
	mem.HandleFunc("/notes/{note_id}", memoriesHandler.DeleteNote).Methods(http.MethodDelete)
	mem.HandleFunc("/dates", memoriesHandler.CreateDate).Methods(http.MethodPost)
	mem.HandleFunc("/dates", memoriesHandler.ListDates).Methods(http.MethodGet)
	mem.HandleFunc("/dates/{date_id}", memoriesHandler.DeleteDate).Methods(http.MethodDelete)

	// Realtime playground entry point. Auth runs before the upgrade;
	// browser clients pass the token as a query parameter.
	pg := api.PathPrefix("/playground").Subrouter()
	pg.Use(authMiddleware)
	pg.Handle("/ws", wsHandler).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
