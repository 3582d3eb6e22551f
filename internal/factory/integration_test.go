package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/services/profile"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) itemNames(playerView *model.PlayerView) []string {
	names := make([]string, len(playerView.Items))
	for i, item := range playerView.Items {
		names[i] = item.Name
	}
	return names
}

// Test: the full account lifecycle from registration to logout
func (s *IntegrationSuite) TestAccountLifecycle() {
	s.app.MockRandom.QueueString("anaplayerid00001")

	// Step 1: Register
	registered, err := s.app.AuthService.Register(s.ctx, "A1", "Ana", model.SchoolAguachica, model.GenderMasculino)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p_anaplayerid00001"), registered.Player.ID)
	s.Equal(1, registered.Player.Level)
	s.Equal("0", registered.Player.Money)
	s.Empty(registered.Items)

	// Step 2: Login by document
	token, loggedIn, err := s.app.AuthService.Login(s.ctx, "A1")
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal(registered.Player.ID, loggedIn.Player.ID)

	// Step 3: Complete a level
	afterFirst, err := s.app.ProgressionService.CompleteLevel(s.ctx, registered.Player.ID, 10, 30)
	s.Require().NoError(err)
	s.Equal(2, afterFirst.Player.Level)
	s.Equal("10", afterFirst.Player.Money)
	s.ElementsMatch([]string{"cinturon", "cristal-rojo"}, s.itemNames(afterFirst))

	// Step 4: Complete another level; earlier rewards stay granted once
	afterSecond, err := s.app.ProgressionService.CompleteLevel(s.ctx, registered.Player.ID, 10, 30)
	s.Require().NoError(err)
	s.Equal(3, afterSecond.Player.Level)
	s.Equal("20", afterSecond.Player.Money)
	s.ElementsMatch(
		[]string{"cinturon", "cristal-rojo", "pechera", "cristal-amarillo"},
		s.itemNames(afterSecond))

	// Step 5: The assembled view matches the last mutation
	assembled, err := s.app.Assembler.Assemble(s.ctx, registered.Player.ID)
	s.Require().NoError(err)
	s.Equal(afterSecond.Player, assembled.Player)

	// Step 6: Logout revokes the token
	deleted, err := s.app.AuthService.Logout(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(1, deleted)

	_, err = s.app.AuthService.ValidateToken(s.ctx, token)
	s.Error(err)
}

// Test: session expiry driven by the mock clock
func (s *IntegrationSuite) TestSessionExpiry() {
	s.app.MockRandom.QueueString("anaplayerid00001")
	_, err := s.app.AuthService.Register(s.ctx, "A1", "Ana", model.SchoolAguachica, model.GenderMasculino)
	s.Require().NoError(err)

	token, _, err := s.app.AuthService.Login(s.ctx, "A1")
	s.Require().NoError(err)

	_, err = s.app.AuthService.ValidateToken(s.ctx, token)
	s.Require().NoError(err)

	s.app.MockClock.Advance(7*24*time.Hour + time.Minute)

	_, err = s.app.AuthService.ValidateToken(s.ctx, token)
	s.Error(err)
}

// Test: the catalog is seeded by the factory
func (s *IntegrationSuite) TestCatalogSeeded() {
	for _, name := range []string{
		"cinturon", "pechera", "botas", "casco",
		"cristal-rojo", "cristal-amarillo", "cristal-gris", "cristal-verde",
	} {
		item, err := s.app.CatalogService.Lookup(s.ctx, name)
		s.Require().NoError(err, "item %s", name)
		s.Equal(model.ItemIDFor(name), item.ID)
	}
}

// Test: profile updates flow through to progression reads
func (s *IntegrationSuite) TestProfileUpdateFeedsProgression() {
	s.app.MockRandom.QueueString("anaplayerid00001")
	registered, err := s.app.AuthService.Register(s.ctx, "A1", "Ana", model.SchoolAguachica, model.GenderMasculino)
	s.Require().NoError(err)

	money := "100"
	_, err = s.app.ProfileService.Update(s.ctx, registered.Player.ID, profile.Patch{Money: &money})
	s.Require().NoError(err)

	afterLevel, err := s.app.ProgressionService.CompleteLevel(s.ctx, registered.Player.ID, 5, 10)
	s.Require().NoError(err)
	s.Equal("105", afterLevel.Player.Money)
}
