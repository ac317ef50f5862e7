package playground

import (
	"math"
	"sort"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
)

// Move records a client-reported position and broadcasts it. Positions
// are trusted as-is apart from clamping to the world bounds. The mover
// gets a fresh proximity report; nobody else does.
func (s *Server) Move(playerID model.PlayerID, x, y float64, direction string, isMoving bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[playerID]
	if !ok {
		return model.ErrNotConnected
	}

	conn.x = clamp(x, 0, WorldWidth)
	conn.y = clamp(y, 0, WorldHeight)
	conn.direction = direction
	conn.isMoving = isMoving

	s.broadcastLocked(playerID, PlayerMovedEvent{
		Type:      EventTypePlayerMoved,
		PlayerID:  string(playerID),
		X:         conn.x,
		Y:         conn.y,
		Direction: conn.direction,
		IsMoving:  conn.isMoving,
	})

	conn.sender.Send(NearbyPlayersEvent{
		Type:   EventTypeNearbyPlayers,
		Nearby: s.nearbyLocked(conn),
	})
	return nil
}

// NearbyOf reports every player within ProximityRadius of the given
// player, nearest first
func (s *Server) NearbyOf(playerID model.PlayerID) ([]NearbyPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[playerID]
	if !ok {
		return nil, model.ErrNotConnected
	}
	return s.nearbyLocked(conn), nil
}

func (s *Server) nearbyLocked(conn *connection) []NearbyPlayer {
	nearby := make([]NearbyPlayer, 0)
	for id, other := range s.conns {
		if id == conn.playerID {
			continue
		}
		d := distance(conn.x, conn.y, other.x, other.y)
		if d <= ProximityRadius {
			nearby = append(nearby, NearbyPlayer{
				PlayerID: string(id),
				Username: other.username,
				Distance: d,
			})
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})
	return nearby
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
