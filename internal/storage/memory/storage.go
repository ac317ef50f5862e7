package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	pairs             map[model.PairID]*model.Pair
	memberIndex       map[model.PlayerID]model.PairID
	pairCodes         map[model.PairCode]*model.PendingPairCode
	notes             map[model.NoteID]*model.Note
	dates             map[model.SpecialDateID]*model.SpecialDate
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		pairs:             make(map[model.PairID]*model.Pair),
		memberIndex:       make(map[model.PlayerID]model.PairID),
		pairCodes:         make(map[model.PairCode]*model.PendingPairCode),
		notes:             make(map[model.NoteID]*model.Note),
		dates:             make(map[model.SpecialDateID]*model.SpecialDate),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Pair operations

func (s *Storage) SavePair(ctx context.Context, pair *model.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[pair.ID] = pair
	s.memberIndex[pair.Members[0]] = pair.ID
	s.memberIndex[pair.Members[1]] = pair.ID
	return nil
}

func (s *Storage) GetPair(ctx context.Context, id model.PairID) (*model.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pair, ok := s.pairs[id]
	if !ok {
		return nil, model.ErrPairNotFound
	}
	return pair, nil
}

func (s *Storage) GetPairByMember(ctx context.Context, playerID model.PlayerID) (*model.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pairID, ok := s.memberIndex[playerID]
	if !ok {
		return nil, model.ErrPairNotFound
	}
	pair, ok := s.pairs[pairID]
	if !ok {
		return nil, model.ErrPairNotFound
	}
	return pair, nil
}

func (s *Storage) DeletePair(ctx context.Context, id model.PairID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pair, ok := s.pairs[id]; ok {
		delete(s.memberIndex, pair.Members[0])
		delete(s.memberIndex, pair.Members[1])
	}
	delete(s.pairs, id)
	return nil
}

// Pair code operations

func (s *Storage) SavePairCode(ctx context.Context, code *model.PendingPairCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairCodes[code.Code] = code
	return nil
}

func (s *Storage) GetPairCode(ctx context.Context, code model.PairCode) (*model.PendingPairCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pc, ok := s.pairCodes[code]
	if !ok {
		return nil, model.ErrPairCodeNotFound
	}
	return pc, nil
}

func (s *Storage) DeletePairCode(ctx context.Context, code model.PairCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pairCodes, code)
	return nil
}

// Note operations

func (s *Storage) SaveNote(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.ID] = note
	return nil
}

func (s *Storage) GetNote(ctx context.Context, id model.NoteID) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[id]
	if !ok {
		return nil, model.ErrNoteNotFound
	}
	return note, nil
}

func (s *Storage) GetNotesForPair(ctx context.Context, pairID model.PairID) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var notes []*model.Note
	for _, note := range s.notes {
		if note.PairID == pairID {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *Storage) DeleteNote(ctx context.Context, id model.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, id)
	return nil
}

// Special date operations

func (s *Storage) SaveSpecialDate(ctx context.Context, date *model.SpecialDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dates[date.ID] = date
	return nil
}

func (s *Storage) GetSpecialDate(ctx context.Context, id model.SpecialDateID) (*model.SpecialDate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	date, ok := s.dates[id]
	if !ok {
		return nil, model.ErrDateNotFound
	}
	return date, nil
}

func (s *Storage) GetSpecialDatesForPair(ctx context.Context, pairID model.PairID) ([]*model.SpecialDate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var dates []*model.SpecialDate
	for _, date := range s.dates {
		if date.PairID == pairID {
			dates = append(dates, date)
		}
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Date.Before(dates[j].Date)
	})
	return dates, nil
}

func (s *Storage) DeleteSpecialDate(ctx context.Context, id model.SpecialDateID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dates, id)
	return nil
}
