package pairing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/dependencies/mocks"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/storage/memory"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreateCode() {
	s.random.QueueString("ABC123")

	pc, err := s.service.CreateCode(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(model.PairCode("ABC123"), pc.Code)
	s.Equal(model.PlayerID("player-1"), pc.IssuerID)
	s.Equal(s.clock.Now().Add(PairCodeTTL), pc.ExpiresAt)
}

func (s *ServiceSuite) TestCreateCodeWhileAlreadyPaired() {
	_ = s.storage.SavePair(s.ctx, &model.Pair{
		ID:      "pair-1",
		Members: [2]model.PlayerID{"player-1", "player-2"},
	})

	_, err := s.service.CreateCode(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrAlreadyPaired)
}

func (s *ServiceSuite) TestRedeemCodeCreatesPair() {
	s.random.QueueString("ABC123")
	_, err := s.service.CreateCode(s.ctx, "player-1")
	s.Require().NoError(err)

	pair, err := s.service.RedeemCode(s.ctx, "player-2", "ABC123")
	s.Require().NoError(err)
	s.True(pair.HasMember("player-1"))
	s.True(pair.HasMember("player-2"))
	s.Equal(model.PlayerID("player-1"), pair.PartnerOf("player-2"))

	// Code is consumed
	_, err = s.service.RedeemCode(s.ctx, "player-3", "ABC123")
	s.ErrorIs(err, model.ErrPairCodeNotFound)
}

func (s *ServiceSuite) TestRedeemOwnCode() {
	s.random.QueueString("ABC123")
	_, _ = s.service.CreateCode(s.ctx, "player-1")

	_, err := s.service.RedeemCode(s.ctx, "player-1", "ABC123")
	s.ErrorIs(err, model.ErrSelfPair)
}

func (s *ServiceSuite) TestRedeemExpiredCode() {
	s.random.QueueString("ABC123")
	_, _ = s.service.CreateCode(s.ctx, "player-1")

	s.clock.Advance(PairCodeTTL + time.Minute)

	_, err := s.service.RedeemCode(s.ctx, "player-2", "ABC123")
	s.ErrorIs(err, model.ErrPairCodeExpired)
}

func (s *ServiceSuite) TestRedeemWhileRedeemerPaired() {
	s.random.QueueString("ABC123")
	_, _ = s.service.CreateCode(s.ctx, "player-1")

	_ = s.storage.SavePair(s.ctx, &model.Pair{
		ID:      "pair-9",
		Members: [2]model.PlayerID{"player-2", "player-3"},
	})

	_, err := s.service.RedeemCode(s.ctx, "player-2", "ABC123")
	s.ErrorIs(err, model.ErrAlreadyPaired)
}

func (s *ServiceSuite) TestUnpair() {
	s.random.QueueString("ABC123")
	_, _ = s.service.CreateCode(s.ctx, "player-1")
	_, err := s.service.RedeemCode(s.ctx, "player-2", "ABC123")
	s.Require().NoError(err)

	err = s.service.Unpair(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.service.GetPairFor(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrNotPaired)
	_, err = s.service.GetPairFor(s.ctx, "player-2")
	s.ErrorIs(err, model.ErrNotPaired)
}

func (s *ServiceSuite) TestUnpairWhenNotPaired() {
	err := s.service.Unpair(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrNotPaired)
}
