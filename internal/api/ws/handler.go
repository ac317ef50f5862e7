package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/apierr"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/middleware"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/playground"
)

// Handler upgrades authenticated requests into playground connections
type Handler struct {
	playground *playground.Server
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

// NewHandler creates a websocket handler backed by the given playground
func NewHandler(pg *playground.Server, logger *slog.Logger) *Handler {
	return &Handler{
		playground: pg,
		logger:     logger.With(slog.String("component", "ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is token-authenticated, so cross-origin
			// upgrades are acceptable
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles GET /api/v1/playground/ws. Authentication rejects
// before the upgrade, so a bad token costs a plain 401 rather than a
// half-open socket.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	if player == nil {
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(player.ID, conn, h.playground, h.logger)
	if err := h.playground.Connect(r.Context(), player.ID, client); err != nil {
		h.logger.Warn("playground connect failed",
			slog.String("player_id", string(player.ID)),
			slog.Any("error", err))
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
