package auth

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
	s.service = New(s.storage, s.clock, s.random, Config{
		Secret:   "test-secret",
		TokenTTL: time.Hour,
	}, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRegisterCreatesPlayerAndToken() {
	session, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice", model.GenderFemale)
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alice", session.Player.DisplayName)
	s.Equal(model.GenderFemale, session.Player.Gender)

	stored, err := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Equal("Alice", stored.DisplayName)
}

func (s *ServiceSuite) TestRegisterIDComesFromRandomSource() {
	s.random.QueueString("abc123def456")

	session, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice", model.GenderFemale)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p_abc123def456"), session.PlayerID)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice", model.GenderFemale)
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "other", "Other Alice", model.GenderFemale)
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterDefaultsGender() {
	session, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice", "")
	s.Require().NoError(err)
	s.Equal(model.GenderUnspecified, session.Player.Gender)
}

func (s *ServiceSuite) TestLoginSucceeds() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice", model.GenderFemale)
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)
	s.Equal("Alice", session.Player.DisplayName)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice", model.GenderFemale)
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "hunter2")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestVerifyTokenRoundTrip() {
	session, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice", model.GenderFemale)
	s.Require().NoError(err)

	player, err := s.service.VerifyToken(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, player.ID)
}

func (s *ServiceSuite) TestVerifyTokenGarbage() {
	_, err := s.service.VerifyToken(s.ctx, "not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenExpired() {
	session, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice", model.GenderFemale)
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	_, err = s.service.VerifyToken(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenWrongSecret() {
	other := New(s.storage, s.clock, s.random, Config{Secret: "different-secret", TokenTTL: time.Hour}, testutil.NopLogger())
	session, err := other.Register(s.ctx, "bob", "hunter2", "Bob", model.GenderMale)
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestUpdateProfile() {
	session, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice", model.GenderFemale)
	s.Require().NoError(err)

	updated, err := s.service.UpdateProfile(s.ctx, session.PlayerID, "Ally", model.GenderUnspecified)
	s.Require().NoError(err)
	s.Equal("Ally", updated.DisplayName)
	s.Equal(model.GenderUnspecified, updated.Gender)

	stored, _ := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Equal("Ally", stored.DisplayName)
}
