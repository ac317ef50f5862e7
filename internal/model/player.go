package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Gender selects the display assets the client renders for a player
type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderUnspecified Gender = "unspecified"
)

// Player represents an account holder
type Player struct {
	ID          PlayerID
	DisplayName string
	Gender      Gender
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data
// Stored separately so credential material never travels with the profile
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
