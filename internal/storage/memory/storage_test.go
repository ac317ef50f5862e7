package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
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
	s.Equal(model.GenderFemale, retrieved.Gender)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Pair tests

func (s *StorageSuite) TestSaveAndGetPair() {
	pair := &model.Pair{
		ID:        "pair-1",
		Members:   [2]model.PlayerID{"player-1", "player-2"},
		CreatedAt: time.Now(),
	}

	err := s.storage.SavePair(s.ctx, pair)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPair(s.ctx, "pair-1")
	s.Require().NoError(err)
	s.Equal(pair.Members, retrieved.Members)
}

func (s *StorageSuite) TestGetPairByMember() {
	pair := &model.Pair{
		ID:      "pair-1",
		Members: [2]model.PlayerID{"player-1", "player-2"},
	}
	_ = s.storage.SavePair(s.ctx, pair)

	retrieved, err := s.storage.GetPairByMember(s.ctx, "player-2")
	s.Require().NoError(err)
	s.Equal(model.PairID("pair-1"), retrieved.ID)
}

func (s *StorageSuite) TestGetPairByMemberNotFound() {
	_, err := s.storage.GetPairByMember(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPairNotFound)
}

func (s *StorageSuite) TestDeletePairClearsMemberIndex() {
	pair := &model.Pair{
		ID:      "pair-1",
		Members: [2]model.PlayerID{"player-1", "player-2"},
	}
	_ = s.storage.SavePair(s.ctx, pair)

	err := s.storage.DeletePair(s.ctx, "pair-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPairByMember(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPairNotFound)
	_, err = s.storage.GetPairByMember(s.ctx, "player-2")
	s.ErrorIs(err, model.ErrPairNotFound)
}

// Pair code tests

func (s *StorageSuite) TestSaveAndGetPairCode() {
	pc := &model.PendingPairCode{
		Code:      "ABC123",
		IssuerID:  "player-1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	err := s.storage.SavePairCode(s.ctx, pc)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPairCode(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.IssuerID)
}

func (s *StorageSuite) TestDeletePairCode() {
	pc := &model.PendingPairCode{Code: "ABC123", IssuerID: "player-1"}
	_ = s.storage.SavePairCode(s.ctx, pc)

	err := s.storage.DeletePairCode(s.ctx, "ABC123")
	s.Require().NoError(err)

	_, err = s.storage.GetPairCode(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrPairCodeNotFound)
}

// Note tests

func (s *StorageSuite) TestNotesForPairSortedByCreation() {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveNote(s.ctx, &model.Note{ID: "n2", PairID: "pair-1", Title: "second", CreatedAt: base.Add(time.Hour)})
	_ = s.storage.SaveNote(s.ctx, &model.Note{ID: "n1", PairID: "pair-1", Title: "first", CreatedAt: base})
	_ = s.storage.SaveNote(s.ctx, &model.Note{ID: "n3", PairID: "pair-2", Title: "other pair", CreatedAt: base})

	notes, err := s.storage.GetNotesForPair(s.ctx, "pair-1")
	s.Require().NoError(err)
	s.Require().Len(notes, 2)
	s.Equal("first", notes[0].Title)
	s.Equal("second", notes[1].Title)
}

func (s *StorageSuite) TestDeleteNote() {
	_ = s.storage.SaveNote(s.ctx, &model.Note{ID: "n1", PairID: "pair-1"})

	err := s.storage.DeleteNote(s.ctx, "n1")
	s.Require().NoError(err)

	_, err = s.storage.GetNote(s.ctx, "n1")
	s.ErrorIs(err, model.ErrNoteNotFound)
}

// Special date tests

func (s *StorageSuite) TestSpecialDatesForPairSortedByDate() {
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
	s.Equal("anniversary", dates[1].Label)
}
