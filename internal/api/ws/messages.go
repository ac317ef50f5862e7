package ws

import (
	"errors"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
)

// Client -> server message types
const (
	msgTypeMove          = "move"
	msgTypeInvite        = "chat-invite"
	msgTypeInviteAccept  = "chat-invite-accept"
	msgTypeInviteDecline = "chat-invite-decline"
	msgTypeMessage       = "private-message"
	msgTypeLeaveChat     = "leave-chat"
)

// clientMessage is the envelope for everything a client sends. Fields
// beyond Type are populated depending on the message type.
type clientMessage struct {
	Type string `json:"type"`

	// move
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction string  `json:"direction"`
	IsMoving  bool    `json:"isMoving"`

	// chat-invite
	TargetID string `json:"targetId"`

	// chat-invite-accept / chat-invite-decline
	FromID string `json:"fromId"`

	// private-message / leave-chat
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

// errorReason maps a playground error to the short reason string the
// client surfaces to the user
func errorReason(err error) string {
	switch {
	case errors.Is(err, model.ErrTargetNotFound):
		return "not found"
	case errors.Is(err, model.ErrOutOfRange):
		return "too far"
	case errors.Is(err, model.ErrAlreadyEngaged), errors.Is(err, model.ErrAlreadyInRoom):
		return "already chatting"
	case errors.Is(err, model.ErrInviteNotFound):
		return "no pending invite"
	case errors.Is(err, model.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, model.ErrNotRoomMember):
		return "not a member of this room"
	case errors.Is(err, model.ErrNotConnected):
		return "not connected"
	default:
		return "something went wrong"
	}
}
