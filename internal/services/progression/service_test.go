package progression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/services/catalog"
	"github.com/libroquest/gamebook-server/internal/storage/memory"
	"github.com/libroquest/gamebook-server/internal/testutil"
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

	s.Require().NoError(catalog.New(s.storage, testutil.NopLogger()).EnsureDefaults(s.ctx))
}

func (s *ServiceSuite) createPlayer(level int, money string) *model.Player {
	player := &model.Player{
		ID:       "p_test",
		Document: "CC1001",
		Name:     "Alice",
		School:   model.SchoolAguachica,
		Gender:   model.GenderMasculino,
		Money:    money,
		Level:    level,
	}
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, player))
	return player
}

func (s *ServiceSuite) itemNames(playerView *model.PlayerView) []string {
	names := make([]string, len(playerView.Items))
	for i, item := range playerView.Items {
		names[i] = item.Name
	}
	return names
}

func (s *ServiceSuite) TestCompleteLevelAdvancesAndPays() {
	s.createPlayer(1, "0")

	playerView, err := s.service.CompleteLevel(s.ctx, "p_test", 10, 30)
	s.Require().NoError(err)

	s.Equal(2, playerView.Player.Level)
	s.Equal("10", playerView.Player.Money)
	s.ElementsMatch([]string{"cinturon", "cristal-rojo"}, s.itemNames(playerView))
}

func (s *ServiceSuite) TestCompleteLevelAccumulatesMoney() {
	s.createPlayer(1, "0")

	_, err := s.service.CompleteLevel(s.ctx, "p_test", 10, 30)
	s.Require().NoError(err)
	playerView, err := s.service.CompleteLevel(s.ctx, "p_test", 15, 45)
	s.Require().NoError(err)

	s.Equal(3, playerView.Player.Level)
	s.Equal("25", playerView.Player.Money)
}

func (s *ServiceSuite) TestCompleteLevelRewardsNeverDuplicate() {
	s.createPlayer(1, "0")

	_, err := s.service.CompleteLevel(s.ctx, "p_test", 0, 10)
	s.Require().NoError(err)

	// Re-grant attempt for level 1 rewards via the profile-reset path:
	// knock the level back down and complete again
	player, err := s.storage.GetPlayer(s.ctx, "p_test")
	s.Require().NoError(err)
	player.Level = 1
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, player))

	playerView, err := s.service.CompleteLevel(s.ctx, "p_test", 0, 10)
	s.Require().NoError(err)

	s.ElementsMatch([]string{"cinturon", "cristal-rojo"}, s.itemNames(playerView))
}

func (s *ServiceSuite) TestCompleteLevelStopsAtCap() {
	s.createPlayer(model.MaxLevel, "100")

	playerView, err := s.service.CompleteLevel(s.ctx, "p_test", 5, 60)
	s.Require().NoError(err)

	s.Equal(model.MaxLevel, playerView.Player.Level)
	s.Equal("105", playerView.Player.Money)
}

func (s *ServiceSuite) TestCompleteLevelAtCapStillLogsTime() {
	s.createPlayer(model.MaxLevel, "0")

	_, err := s.service.CompleteLevel(s.ctx, "p_test", 0, 60)
	s.Require().NoError(err)
	_, err = s.service.CompleteLevel(s.ctx, "p_test", 0, 45)
	s.Require().NoError(err)

	records := s.storage.TimeRecords()
	s.Require().Len(records, 2)
	s.Equal(model.MaxLevel-1, records[0].Level)
	s.Equal(int64(60), records[0].Seconds)
	s.Equal(int64(45), records[1].Seconds)
}

func (s *ServiceSuite) TestCompleteLevelLogsCompletedLevel() {
	s.createPlayer(3, "0")

	_, err := s.service.CompleteLevel(s.ctx, "p_test", 0, 90)
	s.Require().NoError(err)

	records := s.storage.TimeRecords()
	s.Require().Len(records, 1)
	s.Equal(model.PlayerID("p_test"), records[0].PlayerID)
	s.Equal(3, records[0].Level)
	s.Equal(int64(90), records[0].Seconds)
}

func (s *ServiceSuite) TestCompleteLevelFullRun() {
	s.createPlayer(1, "0")

	var playerView *model.PlayerView
	var err error
	for i := 0; i < 4; i++ {
		playerView, err = s.service.CompleteLevel(s.ctx, "p_test", 10, 30)
		s.Require().NoError(err)
	}

	s.Equal(model.MaxLevel, playerView.Player.Level)
	s.Equal("40", playerView.Player.Money)
	s.ElementsMatch([]string{
		"cinturon", "cristal-rojo",
		"pechera", "cristal-amarillo",
		"botas", "cristal-gris",
		"casco", "cristal-verde",
	}, s.itemNames(playerView))
}

func (s *ServiceSuite) TestCompleteLevelRejectsNegativeCoins() {
	s.createPlayer(1, "0")

	_, err := s.service.CompleteLevel(s.ctx, "p_test", -1, 30)
	s.ErrorIs(err, ErrNegativeCoins)
}

func (s *ServiceSuite) TestCompleteLevelRejectsNegativeTime() {
	s.createPlayer(1, "0")

	_, err := s.service.CompleteLevel(s.ctx, "p_test", 10, -1)
	s.ErrorIs(err, ErrNegativeTime)
}

func (s *ServiceSuite) TestCompleteLevelUnknownPlayer() {
	_, err := s.service.CompleteLevel(s.ctx, "p_nobody", 10, 30)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestCompleteLevelCorruptMoneyLeavesNoPartialState() {
	s.createPlayer(2, "not-a-number")

	_, err := s.service.CompleteLevel(s.ctx, "p_test", 10, 30)
	s.ErrorIs(err, model.ErrCorruptMoney)

	// Nothing moved: level, balance and the time log are untouched
	player, err := s.storage.GetPlayer(s.ctx, "p_test")
	s.Require().NoError(err)
	s.Equal(2, player.Level)
	s.Equal("not-a-number", player.Money)
	s.Empty(s.storage.TimeRecords())
}

func (s *ServiceSuite) TestRewardsForLevel() {
	s.Equal([]string{"cinturon", "cristal-rojo"}, RewardsForLevel(1))
	s.Equal([]string{"casco", "cristal-verde"}, RewardsForLevel(4))
	s.Empty(RewardsForLevel(5))
	s.Empty(RewardsForLevel(0))
}
