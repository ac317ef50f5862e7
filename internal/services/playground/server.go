package playground

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/dependencies/clock"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/dependencies/random"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/storage"
)

const (
	// WorldWidth and WorldHeight bound the playground plane
	WorldWidth  = 1000.0
	WorldHeight = 1000.0

	// ProximityRadius is the Euclidean distance within which players
	// count as nearby and may exchange chat invites
	ProximityRadius = 100.0

	// MaxMessageLength caps private messages; longer input is truncated
	MaxMessageLength = 200

	// RoomHistoryLimit bounds the in-memory transcript of a room
	RoomHistoryLimit = 100

	// InviteTTL is how long a pending invite stays answerable
	InviteTTL = 60 * time.Second

	// sweepInterval is how often Run checks for expired invites
	sweepInterval = 10 * time.Second

	connIDLength   = 12
	connIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// colorPalette is cycled through by spawn color assignment
var colorPalette = []string{
	"#e74c3c",
	"#e67e22",
	"#f1c40f",
	"#2ecc71",
	"#1abc9c",
	"#3498db",
	"#9b59b6",
	"#e84393",
}

// Sender delivers events to a single connected client. Implementations
// must not block; the websocket layer enqueues onto a buffered channel
// and drops the connection if it is full. Close must be idempotent: the
// server calls it whenever it evicts a connection, including one it is
// replacing on reconnect.
type Sender interface {
	Send(event any)
	Close()
}

type connection struct {
	connID    string
	playerID  model.PlayerID
	username  string
	gender    model.Gender
	color     string
	x         float64
	y         float64
	direction string
	isMoving  bool
	roomID    string
	sender    Sender
}

func (c *connection) state() PlayerState {
	return PlayerState{
		PlayerID:  string(c.playerID),
		Username:  c.username,
		Gender:    string(c.gender),
		Color:     c.color,
		X:         c.x,
		Y:         c.y,
		Direction: c.direction,
		IsMoving:  c.isMoving,
	}
}

type inviteKey struct {
	from model.PlayerID
	to   model.PlayerID
}

type invite struct {
	from      model.PlayerID
	to        model.PlayerID
	createdAt time.Time
}

type room struct {
	id        string
	members   [2]model.PlayerID
	messages  []MessageReceivedEvent
	createdAt time.Time
}

func (r *room) hasMember(id model.PlayerID) bool {
	return r.members[0] == id || r.members[1] == id
}

func (r *room) partnerOf(id model.PlayerID) model.PlayerID {
	if r.members[0] == id {
		return r.members[1]
	}
	return r.members[0]
}

// Server holds all live playground state. Everything here is ephemeral:
// a restart empties the world and clients reconnect fresh.
type Server struct {
	mu      sync.Mutex
	conns   map[model.PlayerID]*connection
	rooms   map[string]*room
	invites map[inviteKey]*invite

	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

func New(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Server {
	return &Server{
		conns:   make(map[model.PlayerID]*connection),
		rooms:   make(map[string]*room),
		invites: make(map[inviteKey]*invite),
		storage: store,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "playground")),
	}
}

// Run sweeps expired invites until ctx is cancelled
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepExpiredInvites()
		}
	}
}

// Connect registers a player in the world, spawns them at a random
// position with an assigned color, seeds them with an init event and
// announces them to everyone else. A player already connected is
// disconnected first; the newer connection wins.
func (s *Server) Connect(ctx context.Context, playerID model.PlayerID, sender Sender) error {
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conns[playerID]; ok {
		s.disconnectLocked(playerID)
	}

	conn := &connection{
		connID:    s.random.String(connIDLength, connIDAlphabet),
		playerID:  playerID,
		username:  player.DisplayName,
		gender:    player.Gender,
		color:     colorPalette[s.random.Intn(len(colorPalette))],
		x:         s.random.Float64() * WorldWidth,
		y:         s.random.Float64() * WorldHeight,
		direction: "down",
		sender:    sender,
	}
	s.conns[playerID] = conn

	others := make([]PlayerState, 0, len(s.conns)-1)
	for id, other := range s.conns {
		if id == playerID {
			continue
		}
		others = append(others, other.state())
	}
	sender.Send(InitEvent{
		Type:    EventTypeInit,
		SelfID:  string(playerID),
		Players: others,
	})

	s.broadcastLocked(playerID, PlayerJoinedEvent{
		Type:    EventTypePlayerJoined,
		Player:  conn.state(),
		Message: fmt.Sprintf("%s joined the playground", conn.username),
	})

	s.logger.Info("player connected",
		slog.String("player_id", string(playerID)),
		slog.String("conn_id", conn.connID))
	return nil
}

// Disconnect tears a player down: pending invites are voided, any room
// is closed with a disconnect reason, and the departure is broadcast.
// The sender identifies which connection is going away; if the player
// has since reconnected, the registry entry belongs to the newer
// connection and the stale teardown is a no-op.
func (s *Server) Disconnect(playerID model.PlayerID, sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[playerID]
	if !ok || conn.sender != sender {
		return
	}
	s.disconnectLocked(playerID)
}

func (s *Server) disconnectLocked(playerID model.PlayerID) {
	conn, ok := s.conns[playerID]
	if !ok {
		return
	}

	// Invites touching this player are voided silently
	for key := range s.invites {
		if key.from == playerID || key.to == playerID {
			delete(s.invites, key)
		}
	}

	if conn.roomID != "" {
		s.closeRoomLocked(conn.roomID, playerID, CloseReasonPartnerDisconnected)
	}

	delete(s.conns, playerID)
	conn.sender.Close()

	s.broadcastLocked(playerID, PlayerLeftEvent{
		Type:     EventTypePlayerLeft,
		PlayerID: string(playerID),
		Username: conn.username,
		Message:  fmt.Sprintf("%s left the playground", conn.username),
	})

	s.logger.Info("player disconnected",
		slog.String("player_id", string(playerID)))
}

// Snapshot returns the public state of every connected player
func (s *Server) Snapshot() []PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]PlayerState, 0, len(s.conns))
	for _, conn := range s.conns {
		players = append(players, conn.state())
	}
	return players
}

// broadcastLocked fans out an event to every connection except one.
// Callers must hold s.mu.
func (s *Server) broadcastLocked(except model.PlayerID, event any) {
	for id, conn := range s.conns {
		if id == except {
			continue
		}
		conn.sender.Send(event)
	}
}
