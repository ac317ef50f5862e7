package model

import "time"

// PairID uniquely identifies a linked couple
type PairID string

// PairCode is a short-lived code one partner redeems to link accounts
type PairCode string

// Pair links exactly two player accounts
type Pair struct {
	ID        PairID
	Members   [2]PlayerID
	CreatedAt time.Time
}

// HasMember reports whether the given player belongs to this pair
func (p *Pair) HasMember(id PlayerID) bool {
	return p.Members[0] == id || p.Members[1] == id
}

// PartnerOf returns the other member of the pair.
// Returns empty if the given player is not a member.
func (p *Pair) PartnerOf(id PlayerID) PlayerID {
	switch id {
	case p.Members[0]:
		return p.Members[1]
	case p.Members[1]:
		return p.Members[0]
	}
	return ""
}

// PendingPairCode is an unredeemed pairing code
type PendingPairCode struct {
	Code      PairCode
	IssuerID  PlayerID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NoteID uniquely identifies a shared note
type NoteID string

// Note is a shared note visible to both members of a pair
type Note struct {
	ID        NoteID
	PairID    PairID
	AuthorID  PlayerID
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SpecialDateID uniquely identifies a shared date entry
type SpecialDateID string

// SpecialDate is a shared calendar entry (anniversary, birthday, ...)
type SpecialDate struct {
	ID        SpecialDateID
	PairID    PairID
	AuthorID  PlayerID
	Label     string
	Date      time.Time
	CreatedAt time.Time
}
