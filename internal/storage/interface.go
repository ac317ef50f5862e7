package storage

import (
	"context"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
)

// Storage defines the interface for data persistence.
// Playground state (live connections, chat rooms, invites) is deliberately
// absent: it is ephemeral and owned by the playground server in memory.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Pair operations
	SavePair(ctx context.Context, pair *model.Pair) error
	GetPair(ctx context.Context, id model.PairID) (*model.Pair, error)
	GetPairByMember(ctx context.Context, playerID model.PlayerID) (*model.Pair, error)
	DeletePair(ctx context.Context, id model.PairID) error

	// Pair code operations
	SavePairCode(ctx context.Context, code *model.PendingPairCode) error
	GetPairCode(ctx context.Context, code model.PairCode) (*model.PendingPairCode, error)
	DeletePairCode(ctx context.Context, code model.PairCode) error

	// Note operations
	SaveNote(ctx context.Context, note *model.Note) error
	GetNote(ctx context.Context, id model.NoteID) (*model.Note, error)
	GetNotesForPair(ctx context.Context, pairID model.PairID) ([]*model.Note, error)
	DeleteNote(ctx context.Context, id model.NoteID) error

	// Special date operations
	SaveSpecialDate(ctx context.Context, date *model.SpecialDate) error
	GetSpecialDate(ctx context.Context, id model.SpecialDateID) (*model.SpecialDate, error)
	GetSpecialDatesForPair(ctx context.Context, pairID model.PairID) ([]*model.SpecialDate, error)
	DeleteSpecialDate(ctx context.Context, id model.SpecialDateID) error
}
