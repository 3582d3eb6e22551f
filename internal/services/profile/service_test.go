package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()

	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{
		ID:       "p_test",
		Document: "CC1001",
		Name:     "Alice",
		School:   model.SchoolAguachica,
		Gender:   model.GenderMasculino,
		Money:    "50",
		Level:    2,
	}))
}

func ptr[T any](v T) *T {
	return &v
}

func (s *ServiceSuite) TestUpdateName() {
	playerView, err := s.service.Update(s.ctx, "p_test", Patch{Name: ptr("Alicia")})
	s.Require().NoError(err)

	s.Equal("Alicia", playerView.Player.Name)
	// Everything else is untouched
	s.Equal(model.SchoolAguachica, playerView.Player.School)
	s.Equal("50", playerView.Player.Money)
	s.Equal(2, playerView.Player.Level)
}

func (s *ServiceSuite) TestUpdateMultipleFields() {
	playerView, err := s.service.Update(s.ctx, "p_test", Patch{
		School: ptr("La Argentina"),
		Gender: ptr("Femenino"),
		Money:  ptr("75"),
		Level:  ptr(4),
	})
	s.Require().NoError(err)

	s.Equal(model.SchoolLaArgentina, playerView.Player.School)
	s.Equal(model.GenderFemenino, playerView.Player.Gender)
	s.Equal("75", playerView.Player.Money)
	s.Equal(4, playerView.Player.Level)
}

func (s *ServiceSuite) TestUpdateEmptyPatchIsNoOp() {
	playerView, err := s.service.Update(s.ctx, "p_test", Patch{})
	s.Require().NoError(err)

	s.Equal("Alice", playerView.Player.Name)
	s.Equal("50", playerView.Player.Money)
}

func (s *ServiceSuite) TestUpdatePersists() {
	_, err := s.service.Update(s.ctx, "p_test", Patch{Name: ptr("Alicia")})
	s.Require().NoError(err)

	player, err := s.storage.GetPlayer(s.ctx, "p_test")
	s.Require().NoError(err)
	s.Equal("Alicia", player.Name)
}

func (s *ServiceSuite) TestUpdateRejectsInvalidSchool() {
	_, err := s.service.Update(s.ctx, "p_test", Patch{Name: ptr("Alicia"), School: ptr("Bogota")})
	s.ErrorIs(err, model.ErrInvalidSchool)

	// Rejected patch applies nothing, including the valid name
	player, err := s.storage.GetPlayer(s.ctx, "p_test")
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)
}

func (s *ServiceSuite) TestUpdateRejectsInvalidGender() {
	_, err := s.service.Update(s.ctx, "p_test", Patch{Gender: ptr("Otro")})
	s.ErrorIs(err, model.ErrInvalidGender)
}

func (s *ServiceSuite) TestUpdateRejectsLevelBelowMinimum() {
	_, err := s.service.Update(s.ctx, "p_test", Patch{Level: ptr(0)})
	s.ErrorIs(err, model.ErrInvalidLevel)
}

func (s *ServiceSuite) TestUpdateLevelAboveCapIsAllowed() {
	// Level is an administrative override, the progression cap does not apply
	playerView, err := s.service.Update(s.ctx, "p_test", Patch{Level: ptr(9)})
	s.Require().NoError(err)
	s.Equal(9, playerView.Player.Level)
}

func (s *ServiceSuite) TestUpdateMoneyIsStoredVerbatim() {
	// The balance is replaced as-is; bad values surface later as a data
	// integrity fault when the balance is next parsed
	playerView, err := s.service.Update(s.ctx, "p_test", Patch{Money: ptr("not-a-number")})
	s.Require().NoError(err)
	s.Equal("not-a-number", playerView.Player.Money)
}

func (s *ServiceSuite) TestUpdateUnknownPlayer() {
	_, err := s.service.Update(s.ctx, "p_nobody", Patch{Name: ptr("X")})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
