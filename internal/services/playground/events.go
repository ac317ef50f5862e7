package playground

import "time"

// Event type tags for server -> client messages
const (
	EventTypeInit            = "init"
	EventTypePlayerJoined    = "player-joined"
	EventTypePlayerMoved     = "player-moved"
	EventTypePlayerLeft      = "player-left"
	EventTypeNearbyPlayers   = "nearby-players"
	EventTypeInviteReceived  = "chat-invite-received"
	EventTypeInviteSent      = "chat-invite-sent"
	EventTypeInviteDeclined  = "chat-invite-declined"
	EventTypeRoomJoined      = "chat-room-joined"
	EventTypeMessageReceived = "private-message-received"
	EventTypeRoomClosed      = "chat-room-closed"
	EventTypeError           = "error"
)

// Decline reasons carried on InviteDeclinedEvent
const (
	DeclineReasonDeclined = "declined"
	DeclineReasonExpired  = "expired"
)

// Room close reasons carried on RoomClosedEvent
const (
	CloseReasonPartnerLeft         = "partner left the chat"
	CloseReasonPartnerDisconnected = "partner disconnected"
)

// PlayerState is the public state of a connected player
type PlayerState struct {
	PlayerID  string  `json:"playerId"`
	Username  string  `json:"username"`
	Gender    string  `json:"gender"`
	Color     string  `json:"color"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction string  `json:"direction"`
	IsMoving  bool    `json:"isMoving"`
}

// NearbyPlayer is one entry of a proximity report
type NearbyPlayer struct {
	PlayerID string  `json:"playerId"`
	Username string  `json:"username"`
	Distance float64 `json:"distance"`
}

// InitEvent seeds a newly connected client with the current world
type InitEvent struct {
	Type    string        `json:"type"`
	SelfID  string        `json:"selfId"`
	Players []PlayerState `json:"players"`
}

// PlayerJoinedEvent announces a new arrival to everyone else
type PlayerJoinedEvent struct {
	Type    string      `json:"type"`
	Player  PlayerState `json:"player"`
	Message string      `json:"message"`
}

// PlayerMovedEvent carries a position update to everyone else
type PlayerMovedEvent struct {
	Type      string  `json:"type"`
	PlayerID  string  `json:"playerId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction string  `json:"direction"`
	IsMoving  bool    `json:"isMoving"`
}

// PlayerLeftEvent announces a departure to everyone else
type PlayerLeftEvent struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// NearbyPlayersEvent is pushed to a mover after each position update
type NearbyPlayersEvent struct {
	Type   string         `json:"type"`
	Nearby []NearbyPlayer `json:"nearby"`
}

// InviteReceivedEvent tells a player someone wants to chat
type InviteReceivedEvent struct {
	Type         string `json:"type"`
	FromID       string `json:"fromId"`
	FromUsername string `json:"fromUsername"`
	FromColor    string `json:"fromColor"`
}

// InviteSentEvent confirms to the inviter that the offer went out
type InviteSentEvent struct {
	Type       string `json:"type"`
	ToID       string `json:"toId"`
	ToUsername string `json:"toUsername"`
}

// InviteDeclinedEvent tells the inviter the offer was turned down or expired
type InviteDeclinedEvent struct {
	Type       string `json:"type"`
	ByID       string `json:"byId"`
	ByUsername string `json:"byUsername"`
	Reason     string `json:"reason"`
}

// RoomJoinedEvent tells both parties their private room is ready
type RoomJoinedEvent struct {
	Type            string `json:"type"`
	RoomID          string `json:"roomId"`
	PartnerID       string `json:"partnerId"`
	PartnerUsername string `json:"partnerUsername"`
	PartnerColor    string `json:"partnerColor"`
}

// MessageReceivedEvent relays a private message to both room members
type MessageReceivedEvent struct {
	Type         string    `json:"type"`
	RoomID       string    `json:"roomId"`
	FromID       string    `json:"fromId"`
	FromUsername string    `json:"fromUsername"`
	FromColor    string    `json:"fromColor"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

// RoomClosedEvent tells the remaining member their room is gone
type RoomClosedEvent struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Reason string `json:"reason"`
}

// ErrorEvent reports a recoverable failure to the initiating client only
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
