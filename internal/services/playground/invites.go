package playground

import (
	"log/slog"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
)

// Invite offers a private chat to a nearby player. If the target has a
// pending invite to the inviter already, both clearly want to talk, so
// the two invites collapse straight into a room.
func (s *Server) Invite(from, to model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inviter, ok := s.conns[from]
	if !ok {
		return model.ErrNotConnected
	}
	if inviter.roomID != "" {
		return model.ErrAlreadyInRoom
	}
	target, ok := s.conns[to]
	if !ok || from == to {
		return model.ErrTargetNotFound
	}
	if target.roomID != "" {
		return model.ErrAlreadyEngaged
	}
	if distance(inviter.x, inviter.y, target.x, target.y) > ProximityRadius {
		return model.ErrOutOfRange
	}

	if _, ok := s.invites[inviteKey{from: to, to: from}]; ok {
		delete(s.invites, inviteKey{from: to, to: from})
		s.createRoomLocked(inviter, target)
		return nil
	}

	s.invites[inviteKey{from: from, to: to}] = &invite{
		from:      from,
		to:        to,
		createdAt: s.clock.Now(),
	}

	target.sender.Send(InviteReceivedEvent{
		Type:         EventTypeInviteReceived,
		FromID:       string(from),
		FromUsername: inviter.username,
		FromColor:    inviter.color,
	})
	inviter.sender.Send(InviteSentEvent{
		Type:       EventTypeInviteSent,
		ToID:       string(to),
		ToUsername: target.username,
	})

	s.logger.Info("chat invite sent",
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return nil
}

// Accept turns a pending invite into a private room for both players
func (s *Server) Accept(by, from model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepter, ok := s.conns[by]
	if !ok {
		return model.ErrNotConnected
	}
	if _, ok := s.invites[inviteKey{from: from, to: by}]; !ok {
		return model.ErrInviteNotFound
	}
	inviter, ok := s.conns[from]
	if !ok {
		delete(s.invites, inviteKey{from: from, to: by})
		return model.ErrTargetNotFound
	}
	if accepter.roomID != "" || inviter.roomID != "" {
		delete(s.invites, inviteKey{from: from, to: by})
		return model.ErrAlreadyEngaged
	}

	delete(s.invites, inviteKey{from: from, to: by})
	delete(s.invites, inviteKey{from: by, to: from})
	s.createRoomLocked(inviter, accepter)
	return nil
}

// Decline removes a pending invite and tells the inviter
func (s *Server) Decline(by, from model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	decliner, ok := s.conns[by]
	if !ok {
		return model.ErrNotConnected
	}
	if _, ok := s.invites[inviteKey{from: from, to: by}]; !ok {
		return model.ErrInviteNotFound
	}
	delete(s.invites, inviteKey{from: from, to: by})

	if inviter, ok := s.conns[from]; ok {
		inviter.sender.Send(InviteDeclinedEvent{
			Type:       EventTypeInviteDeclined,
			ByID:       string(by),
			ByUsername: decliner.username,
			Reason:     DeclineReasonDeclined,
		})
	}
	return nil
}

// SweepExpiredInvites drops invites older than InviteTTL. The inviter
// is told the offer expired; the invitee hears nothing.
func (s *Server) SweepExpiredInvites() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for key, inv := range s.invites {
		if now.Sub(inv.createdAt) < InviteTTL {
			continue
		}
		delete(s.invites, key)

		inviter, ok := s.conns[key.from]
		if !ok {
			continue
		}
		byUsername := string(key.to)
		if target, ok := s.conns[key.to]; ok {
			byUsername = target.username
		}
		inviter.sender.Send(InviteDeclinedEvent{
			Type:       EventTypeInviteDeclined,
			ByID:       string(key.to),
			ByUsername: byUsername,
			Reason:     DeclineReasonExpired,
		})
		s.logger.Info("chat invite expired",
			slog.String("from", string(key.from)),
			slog.String("to", string(key.to)))
	}
}
