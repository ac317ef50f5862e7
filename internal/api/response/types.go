package response

import (
	"time"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Gender      string    `json:"gender"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Gender:      string(p.Gender),
		CreatedAt:   p.CreatedAt,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player    Player    `json:"player"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:    PlayerFromModel(&s.Player),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}

// PairCode is the response for issuing a pair code
type PairCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PairCodeFromModel converts a model.PendingPairCode
func PairCodeFromModel(pc *model.PendingPairCode) PairCode {
	return PairCode{
		Code:      string(pc.Code),
		ExpiresAt: pc.ExpiresAt,
	}
}

// Pair represents a linked couple from the caller's point of view
type Pair struct {
	ID        string    `json:"id"`
	Partner   Player    `json:"partner"`
	CreatedAt time.Time `json:"created_at"`
}

// PairFromModel converts a model.Pair, resolving the caller's partner
func PairFromModel(p *model.Pair, partner *model.Player) Pair {
	return Pair{
		ID:        string(p.ID),
		Partner:   PlayerFromModel(partner),
		CreatedAt: p.CreatedAt,
	}
}

// Note represents a shared note
type Note struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteFromModel converts a model.Note
func NoteFromModel(n *model.Note) Note {
	return Note{
		ID:        string(n.ID),
		AuthorID:  string(n.AuthorID),
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NotesFromModel converts a slice of model.Note
func NotesFromModel(notes []*model.Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = NoteFromModel(n)
	}
	return out
}

// SpecialDate represents a shared calendar entry
type SpecialDate struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Label     string    `json:"label"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// SpecialDateFromModel converts a model.SpecialDate
func SpecialDateFromModel(d *model.SpecialDate) SpecialDate {
	return SpecialDate{
		ID:        string(d.ID),
		AuthorID:  string(d.AuthorID),
		Label:     d.Label,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
	}
}

// SpecialDatesFromModel converts a slice of model.SpecialDate
func SpecialDatesFromModel(dates []*model.SpecialDate) []SpecialDate {
	out := make([]SpecialDate, len(dates))
	for i, d := range dates {
		out[i] = SpecialDateFromModel(d)
	}
	return out
}
