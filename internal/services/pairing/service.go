package pairing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/dependencies/clock"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/dependencies/random"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/storage"
)

const (
	// PairCodeLength is the length of generated pairing codes
	PairCodeLength = 6
	// PairCodeAlphabet is the characters used in pairing codes (avoid confusing chars)
	PairCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// PairCodeTTL bounds how long an unredeemed code stays valid
	PairCodeTTL = 15 * time.Minute
)

// Service links two player accounts into a pair via short-lived codes
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new pairing Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "pairing")),
	}
}

// CreateCode issues a pairing code for the given player.
// Fails if the player is already paired.
func (s *Service) CreateCode(ctx context.Context, playerID model.PlayerID) (*model.PendingPairCode, error) {
	if _, err := s.storage.GetPairByMember(ctx, playerID); err == nil {
		return nil, model.ErrAlreadyPaired
	} else if !errors.Is(err, model.ErrPairNotFound) {
		return nil, err
	}

	now := s.clock.Now()

	// Generate a unique code
	var code model.PairCode
	for {
		code = model.PairCode(s.random.String(PairCodeLength, PairCodeAlphabet))
		_, err := s.storage.GetPairCode(ctx, code)
		if errors.Is(err, model.ErrPairCodeNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	pc := &model.PendingPairCode{
		Code:      code,
		IssuerID:  playerID,
		CreatedAt: now,
		ExpiresAt: now.Add(PairCodeTTL),
	}

	if err := s.storage.SavePairCode(ctx, pc); err != nil {
		return nil, err
	}

	s.logger.Info("pair code issued", slog.String("player_id", string(playerID)))
	return pc, nil
}

// RedeemCode links the redeeming player with the code's issuer
func (s *Service) RedeemCode(ctx context.Context, playerID model.PlayerID, code model.PairCode) (*model.Pair, error) {
	pc, err := s.storage.GetPairCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.clock.Now().After(pc.ExpiresAt) {
		_ = s.storage.DeletePairCode(ctx, code)
		return nil, model.ErrPairCodeExpired
	}

	if pc.IssuerID == playerID {
		return nil, model.ErrSelfPair
	}

	// Neither side may already be paired
	if _, err := s.storage.GetPairByMember(ctx, playerID); err == nil {
		return nil, model.ErrAlreadyPaired
	} else if !errors.Is(err, model.ErrPairNotFound) {
		return nil, err
	}
	if _, err := s.storage.GetPairByMember(ctx, pc.IssuerID); err == nil {
		return nil, model.ErrAlreadyPaired
	} else if !errors.Is(err, model.ErrPairNotFound) {
		return nil, err
	}

	pair := &model.Pair{
		ID:        model.PairID("pr_" + string(code)),
		Members:   [2]model.PlayerID{pc.IssuerID, playerID},
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePair(ctx, pair); err != nil {
		return nil, err
	}
	if err := s.storage.DeletePairCode(ctx, code); err != nil {
		return nil, err
	}

	s.logger.Info("pair created",
		slog.String("pair_id", string(pair.ID)),
		slog.String("issuer", string(pc.IssuerID)),
		slog.String("redeemer", string(playerID)))
	return pair, nil
}

// GetPairFor returns the pair the player belongs to
func (s *Service) GetPairFor(ctx context.Context, playerID model.PlayerID) (*model.Pair, error) {
	pair, err := s.storage.GetPairByMember(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrPairNotFound) {
			return nil, model.ErrNotPaired
		}
		return nil, err
	}
	return pair, nil
}

// GetPartner returns the profile of the player's linked partner
func (s *Service) GetPartner(ctx context.Context, playerID model.PlayerID) (*model.Player, error) {
	pair, err := s.GetPairFor(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return s.storage.GetPlayer(ctx, pair.PartnerOf(playerID))
}

// Unpair dissolves the player's pair
func (s *Service) Unpair(ctx context.Context, playerID model.PlayerID) error {
	pair, err := s.GetPairFor(ctx, playerID)
	if err != nil {
		return err
	}

	if err := s.storage.DeletePair(ctx, pair.ID); err != nil {
		return err
	}

	s.logger.Info("pair dissolved",
		slog.String("pair_id", string(pair.ID)),
		slog.String("requested_by", string(playerID)))
	return nil
}
