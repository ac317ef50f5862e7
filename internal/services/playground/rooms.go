package playground

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
)

// createRoomLocked opens a private room for two players and tells both.
// Callers must hold s.mu and have verified neither player is in a room.
func (s *Server) createRoomLocked(a, b *connection) {
	now := s.clock.Now()
	r := &room{
		id:        fmt.Sprintf("room_%s_%s_%d", a.playerID, b.playerID, now.UnixNano()),
		members:   [2]model.PlayerID{a.playerID, b.playerID},
		createdAt: now,
	}
	s.rooms[r.id] = r
	a.roomID = r.id
	b.roomID = r.id

	a.sender.Send(RoomJoinedEvent{
		Type:            EventTypeRoomJoined,
		RoomID:          r.id,
		PartnerID:       string(b.playerID),
		PartnerUsername: b.username,
		PartnerColor:    b.color,
	})
	b.sender.Send(RoomJoinedEvent{
		Type:            EventTypeRoomJoined,
		RoomID:          r.id,
		PartnerID:       string(a.playerID),
		PartnerUsername: a.username,
		PartnerColor:    a.color,
	})

	s.logger.Info("chat room opened",
		slog.String("room_id", r.id),
		slog.String("member_a", string(a.playerID)),
		slog.String("member_b", string(b.playerID)))
}

// SendMessage relays a private message to both room members. Input is
// trimmed and truncated to MaxMessageLength; an empty result after
// trimming is dropped without error.
func (s *Server) SendMessage(playerID model.PlayerID, roomID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[playerID]
	if !ok {
		return model.ErrNotConnected
	}
	r, ok := s.rooms[roomID]
	if !ok {
		return model.ErrRoomNotFound
	}
	if !r.hasMember(playerID) {
		return model.ErrNotRoomMember
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	// Truncate on runes, not bytes, so multibyte text survives intact
	if runes := []rune(text); len(runes) > MaxMessageLength {
		text = string(runes[:MaxMessageLength])
	}

	msg := MessageReceivedEvent{
		Type:         EventTypeMessageReceived,
		RoomID:       r.id,
		FromID:       string(playerID),
		FromUsername: conn.username,
		FromColor:    conn.color,
		Message:      text,
		Timestamp:    s.clock.Now(),
	}
	r.messages = append(r.messages, msg)
	if len(r.messages) > RoomHistoryLimit {
		r.messages = r.messages[len(r.messages)-RoomHistoryLimit:]
	}

	for _, id := range r.members {
		if member, ok := s.conns[id]; ok {
			member.sender.Send(msg)
		}
	}
	return nil
}

// LeaveRoom closes a room on behalf of one member. Both sides are
// detached; the remaining member is told why the room closed.
func (s *Server) LeaveRoom(playerID model.PlayerID, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conns[playerID]; !ok {
		return model.ErrNotConnected
	}
	r, ok := s.rooms[roomID]
	if !ok {
		return model.ErrRoomNotFound
	}
	if !r.hasMember(playerID) {
		return model.ErrNotRoomMember
	}

	s.closeRoomLocked(roomID, playerID, CloseReasonPartnerLeft)
	return nil
}

// RoomHistory returns a copy of a room's transcript, oldest first
func (s *Server) RoomHistory(playerID model.PlayerID, roomID string) ([]MessageReceivedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conns[playerID]; !ok {
		return nil, model.ErrNotConnected
	}
	r, ok := s.rooms[roomID]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	if !r.hasMember(playerID) {
		return nil, model.ErrNotRoomMember
	}

	history := make([]MessageReceivedEvent, len(r.messages))
	copy(history, r.messages)
	return history, nil
}

// closeRoomLocked tears a room down. The leaver already knows; the
// other member, if still connected, gets a close notice with reason.
// Callers must hold s.mu.
func (s *Server) closeRoomLocked(roomID string, leaver model.PlayerID, reason string) {
	r, ok := s.rooms[roomID]
	if !ok {
		return
	}
	delete(s.rooms, roomID)

	for _, id := range r.members {
		member, ok := s.conns[id]
		if !ok {
			continue
		}
		member.roomID = ""
		if id != leaver {
			member.sender.Send(RoomClosedEvent{
				Type:   EventTypeRoomClosed,
				RoomID: roomID,
				Reason: reason,
			})
		}
	}

	s.logger.Info("chat room closed",
		slog.String("room_id", roomID),
		slog.String("reason", reason))
}
