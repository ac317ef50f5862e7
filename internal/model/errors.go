package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Pairing errors
	ErrPairNotFound     = errors.New("pair not found")
	ErrPairCodeNotFound = errors.New("pair code not found")
	ErrPairCodeExpired  = errors.New("pair code expired")
	ErrAlreadyPaired    = errors.New("player is already paired")
	ErrNotPaired        = errors.New("player is not paired")
	ErrSelfPair         = errors.New("cannot pair with yourself")

	// Memories errors
	ErrNoteNotFound = errors.New("note not found")
	ErrDateNotFound = errors.New("special date not found")
	ErrNotPairOwner = errors.New("entry belongs to a different pair")

	// Playground errors
	ErrNotConnected   = errors.New("player is not connected")
	ErrTargetNotFound = errors.New("target player not found")
	ErrOutOfRange     = errors.New("target player is too far away")
	ErrAlreadyEngaged = errors.New("already chatting with this player")
	ErrInviteNotFound = errors.New("no pending invite from this player")
	ErrRoomNotFound   = errors.New("chat room not found")
	ErrNotRoomMember  = errors.New("player is not a member of this room")
	ErrAlreadyInRoom  = errors.New("player is already in a chat room")
)
