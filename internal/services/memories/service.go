package memories

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/dependencies/clock"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/storage"
)

// Limits on stored note fields
const (
	MaxTitleLength = 120
	MaxBodyLength  = 4000
	MaxLabelLength = 120
)

// Errors
var (
	ErrEmptyTitle = errors.New("note title is empty")
	ErrEmptyLabel = errors.New("date label is empty")
)

// Service manages a pair's shared notes and special dates
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new memories Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "memories")),
	}
}

// pairFor resolves the pair the acting player belongs to
func (s *Service) pairFor(ctx context.Context, playerID model.PlayerID) (*model.Pair, error) {
	pair, err := s.storage.GetPairByMember(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrPairNotFound) {
			return nil, model.ErrNotPaired
		}
		return nil, err
	}
	return pair, nil
}

// CreateNote adds a note to the acting player's pair
func (s *Service) CreateNote(ctx context.Context, playerID model.PlayerID, title, body string) (*model.Note, error) {
	pair, err := s.pairFor(ctx, playerID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	title = truncate(title, MaxTitleLength)
	body = truncate(strings.TrimSpace(body), MaxBodyLength)

	now := s.clock.Now()
	note := &model.Note{
		ID:        model.NoteID(generateID("n_")),
		PairID:    pair.ID,
		AuthorID:  playerID,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns all notes of the acting player's pair, oldest first
func (s *Service) ListNotes(ctx context.Context, playerID model.PlayerID) ([]*model.Note, error) {
	pair, err := s.pairFor(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return s.storage.GetNotesForPair(ctx, pair.ID)
}

// DeleteNote removes a note from the acting player's pair
func (s *Service) DeleteNote(ctx context.Context, playerID model.PlayerID, noteID model.NoteID) error {
	pair, err := s.pairFor(ctx, playerID)
	if err != nil {
		return err
	}

	note, err := s.storage.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	if note.PairID != pair.ID {
		return model.ErrNotPairOwner
	}

	return s.storage.DeleteNote(ctx, noteID)
}

// CreateSpecialDate adds a date entry to the acting player's pair
func (s *Service) CreateSpecialDate(ctx context.Context, playerID model.PlayerID, label string, date time.Time) (*model.SpecialDate, error) {
	pair, err := s.pairFor(ctx, playerID)
	if err != nil {
		return nil, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyLabel
	}
	label = truncate(label, MaxLabelLength)

	entry := &model.SpecialDate{
		ID:        model.SpecialDateID(generateID("d_")),
		PairID:    pair.ID,
		AuthorID:  playerID,
		Label:     label,
		Date:      date,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveSpecialDate(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListSpecialDates returns all date entries of the acting player's pair,
// earliest date first
func (s *Service) ListSpecialDates(ctx context.Context, playerID model.PlayerID) ([]*model.SpecialDate, error) {
	pair, err := s.pairFor(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return s.storage.GetSpecialDatesForPair(ctx, pair.ID)
}

// DeleteSpecialDate removes a date entry from the acting player's pair
func (s *Service) DeleteSpecialDate(ctx context.Context, playerID model.PlayerID, dateID model.SpecialDateID) error {
	pair, err := s.pairFor(ctx, playerID)
	if err != nil {
		return err
	}

	entry, err := s.storage.GetSpecialDate(ctx, dateID)
	if err != nil {
		return err
	}
	if entry.PairID != pair.ID {
		return model.ErrNotPairOwner
	}

	return s.storage.DeleteSpecialDate(ctx, dateID)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// generateID generates a random ID with a prefix
func generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
