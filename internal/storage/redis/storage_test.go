package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PairCodeTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		Gender:      model.GenderFemale,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestRegisteredPlayerUsernameIndex() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)
}

// Pair tests

func (s *StorageSuite) TestPairMemberIndexRoundTrip() {
	pair := &model.Pair{
		ID:      "pair-1",
		Members: [2]model.PlayerID{"player-1", "player-2"},
	}
	err := s.storage.SavePair(s.ctx, pair)
	s.Require().NoError(err)

	byMember, err := s.storage.GetPairByMember(s.ctx, "player-2")
	s.Require().NoError(err)
	s.Equal(pair.ID, byMember.ID)

	err = s.storage.DeletePair(s.ctx, "pair-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPairByMember(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPairNotFound)
}

// Pair code tests

func (s *StorageSuite) TestPairCodeExpires() {
	pc := &model.PendingPairCode{Code: "ABC123", IssuerID: "player-1"}
	err := s.storage.SavePairCode(s.ctx, pc)
	s.Require().NoError(err)

	_, err = s.storage.GetPairCode(s.ctx, "ABC123")
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	_, err = s.storage.GetPairCode(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrPairCodeNotFound)
}

// Note tests

func (s *StorageSuite) TestNotesForPair() {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveNote(s.ctx, &model.Note{ID: "n2", PairID: "pair-1", Title: "second", CreatedAt: base.Add(time.Hour)})
	_ = s.storage.SaveNote(s.ctx, &model.Note{ID: "n1", PairID: "pair-1", Title: "first", CreatedAt: base})

	notes, err := s.storage.GetNotesForPair(s.ctx, "pair-1")
	s.Require().NoError(err)
	s.Require().Len(notes, 2)
	s.Equal("first", notes[0].Title)
	s.Equal("second", notes[1].Title)
}

func (s *StorageSuite) TestDeleteNoteRemovesIndexEntry() {
	_ = s.storage.SaveNote(s.ctx, &model.Note{ID: "n1", PairID: "pair-1"})

	err := s.storage.DeleteNote(s.ctx, "n1")
	s.Require().NoError(err)

	notes, err := s.storage.GetNotesForPair(s.ctx, "pair-1")
	s.Require().NoError(err)
	s.Empty(notes)
}

// Special date tests

func (s *StorageSuite) TestSpecialDatesForPairSorted() {
	_ = s.storage.SaveSpecialDate(s.ctx, &model.SpecialDate{
		ID: "d1", PairID: "pair-1", Label: "anniversary",
		Date: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	_ = s.storage.SaveSpecialDate(s.ctx, &model.SpecialDate{
		ID: "d2", PairID: "pair-1", Label: "first met",
		Date: time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC),
	})

	dates, err := s.storage.GetSpecialDatesForPair(s.ctx, "pair-1")
	s.Require().NoError(err)
	s.Require().Len(dates, 2)
	s.Equal("first met", dates[0].Label)
}
