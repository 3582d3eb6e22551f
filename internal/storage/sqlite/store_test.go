package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/storage"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	store, err := Open(filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func (s *StoreSuite) newPlayer(id, document string) *model.Player {
	return &model.Player{
		ID:        model.PlayerID(id),
		Document:  document,
		Name:      "Alice",
		School:    model.SchoolAguachica,
		Gender:    model.GenderMasculino,
		Money:     "0",
		Level:     1,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StoreSuite) TestOpenRequiresPath() {
	_, err := Open("")
	s.Error(err)
}

func (s *StoreSuite) TestOpenAppliesPragmas() {
	var journalMode string
	s.Require().NoError(s.store.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	s.Equal("wal", journalMode)

	var busyTimeout int
	s.Require().NoError(s.store.db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	s.Equal(5000, busyTimeout)

	var foreignKeys int
	s.Require().NoError(s.store.db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	s.Equal(1, foreignKeys)
}

// Player tests

func (s *StoreSuite) TestCreateAndGetPlayer() {
	player := s.newPlayer("p_1", "CC1001")

	err := s.store.CreatePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.store.GetPlayer(s.ctx, "p_1")
	s.Require().NoError(err)
	s.Equal(player.Document, retrieved.Document)
	s.Equal(player.School, retrieved.School)
	s.Equal(player.CreatedAt, retrieved.CreatedAt)
}

func (s *StoreSuite) TestGetPlayerNotFound() {
	_, err := s.store.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StoreSuite) TestCreatePlayerDuplicateDocument() {
	_ = s.store.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001"))

	err := s.store.CreatePlayer(s.ctx, s.newPlayer("p_2", "CC1001"))
	s.ErrorIs(err, model.ErrDocumentTaken)
}

func (s *StoreSuite) TestGetPlayerByDocument() {
	_ = s.store.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001"))

	player, err := s.store.GetPlayerByDocument(s.ctx, "CC1001")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p_1"), player.ID)
}

func (s *StoreSuite) TestUpdatePlayer() {
	_ = s.store.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001"))

	player, _ := s.store.GetPlayer(s.ctx, "p_1")
	player.Name = "Alicia"
	player.Money = "25"
	player.Level = 3
	err := s.store.UpdatePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, _ := s.store.GetPlayer(s.ctx, "p_1")
	s.Equal("Alicia", retrieved.Name)
	s.Equal("25", retrieved.Money)
	s.Equal(3, retrieved.Level)
}

func (s *StoreSuite) TestUpdatePlayerNotFound() {
	err := s.store.UpdatePlayer(s.ctx, s.newPlayer("p_missing", "CC1001"))
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Session tests

func (s *StoreSuite) newSession(token string) *model.Session {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Session{
		Token:     token,
		PlayerID:  "p_1",
		CreatedAt: now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	}
}

func (s *StoreSuite) TestCreateAndGetSession() {
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001")))

	err := s.store.CreateSession(s.ctx, s.newSession("tok1"))
	s.Require().NoError(err)

	session, err := s.store.GetSession(s.ctx, "tok1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p_1"), session.PlayerID)
	s.Equal(s.newSession("tok1").ExpiresAt, session.ExpiresAt)
}

func (s *StoreSuite) TestGetSessionNotFound() {
	_, err := s.store.GetSession(s.ctx, "missing")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StoreSuite) TestCreateSessionDuplicateToken() {
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001")))
	_ = s.store.CreateSession(s.ctx, s.newSession("tok1"))

	err := s.store.CreateSession(s.ctx, s.newSession("tok1"))
	s.ErrorIs(err, model.ErrDuplicateToken)
}

func (s *StoreSuite) TestDeleteSession() {
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001")))
	_ = s.store.CreateSession(s.ctx, s.newSession("tok1"))

	deleted, err := s.store.DeleteSession(s.ctx, "tok1")
	s.Require().NoError(err)
	s.Equal(1, deleted)

	deleted, err = s.store.DeleteSession(s.ctx, "tok1")
	s.Require().NoError(err)
	s.Equal(0, deleted)
}

// Item tests

func (s *StoreSuite) TestSaveItemIsIdempotent() {
	item := &model.Item{Name: "cinturon", ItemType: model.ItemTypeArmadura}
	s.Require().NoError(s.store.SaveItem(s.ctx, item))
	s.Require().NoError(s.store.SaveItem(s.ctx, item))

	retrieved, err := s.store.GetItemByName(s.ctx, "cinturon")
	s.Require().NoError(err)
	s.Equal(model.ItemIDFor("cinturon"), retrieved.ID)
	s.Equal(model.ItemTypeArmadura, retrieved.ItemType)
}

func (s *StoreSuite) TestGetItemByNameNotFound() {
	_, err := s.store.GetItemByName(s.ctx, "espada")
	s.ErrorIs(err, model.ErrItemNotFound)
}

func (s *StoreSuite) TestGetItemsByNames() {
	_ = s.store.SaveItem(s.ctx, &model.Item{Name: "cinturon", ItemType: model.ItemTypeArmadura})
	_ = s.store.SaveItem(s.ctx, &model.Item{Name: "cristal-rojo", ItemType: model.ItemTypeCristal})

	items, err := s.store.GetItemsByNames(s.ctx, []string{"cinturon", "cristal-rojo", "espada"})
	s.Require().NoError(err)
	s.Len(items, 2)
}

func (s *StoreSuite) TestGetItemsByNamesEmpty() {
	items, err := s.store.GetItemsByNames(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(items)
}

// Earned item tests

func (s *StoreSuite) seedEarnable() {
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001")))
	s.Require().NoError(s.store.SaveItem(s.ctx, &model.Item{Name: "cinturon", ItemType: model.ItemTypeArmadura}))
}

func (s *StoreSuite) TestAddAndGetEarnedItems() {
	s.seedEarnable()

	err := s.store.AddEarnedItem(s.ctx, "p_1", model.ItemIDFor("cinturon"))
	s.Require().NoError(err)

	items, err := s.store.GetEarnedItems(s.ctx, "p_1")
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("cinturon", items[0].Name)
}

func (s *StoreSuite) TestAddEarnedItemIsIdempotent() {
	s.seedEarnable()

	_ = s.store.AddEarnedItem(s.ctx, "p_1", model.ItemIDFor("cinturon"))
	_ = s.store.AddEarnedItem(s.ctx, "p_1", model.ItemIDFor("cinturon"))

	items, _ := s.store.GetEarnedItems(s.ctx, "p_1")
	s.Len(items, 1)
}

func (s *StoreSuite) TestHasEarnedItem() {
	s.seedEarnable()
	_ = s.store.AddEarnedItem(s.ctx, "p_1", model.ItemIDFor("cinturon"))

	has, err := s.store.HasEarnedItem(s.ctx, "p_1", model.ItemIDFor("cinturon"))
	s.Require().NoError(err)
	s.True(has)

	has, err = s.store.HasEarnedItem(s.ctx, "p_1", "item_espada")
	s.Require().NoError(err)
	s.False(has)
}

// Time record tests

func (s *StoreSuite) TestAppendTimeRecord() {
	s.Require().NoError(s.store.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001")))

	err := s.store.AppendTimeRecord(s.ctx, &model.TimeRecord{PlayerID: "p_1", Level: 1, Seconds: 30})
	s.Require().NoError(err)
	err = s.store.AppendTimeRecord(s.ctx, &model.TimeRecord{PlayerID: "p_1", Level: 1, Seconds: 30})
	s.Require().NoError(err)

	count, err := s.store.CountTimeRecords(s.ctx, "p_1")
	s.Require().NoError(err)
	s.Equal(2, count)
}

// Transaction tests

func (s *StoreSuite) TestInTxCommitsOnSuccess() {
	err := s.store.InTx(s.ctx, func(tx storage.Storage) error {
		return tx.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001"))
	})
	s.Require().NoError(err)

	_, err = s.store.GetPlayer(s.ctx, "p_1")
	s.NoError(err)
}

func (s *StoreSuite) TestInTxRollsBackOnError() {
	boom := errors.New("boom")

	err := s.store.InTx(s.ctx, func(tx storage.Storage) error {
		if err := tx.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001")); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.store.GetPlayer(s.ctx, "p_1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StoreSuite) TestNestedInTxJoins() {
	err := s.store.InTx(s.ctx, func(tx storage.Storage) error {
		return tx.InTx(s.ctx, func(inner storage.Storage) error {
			return inner.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001"))
		})
	})
	s.Require().NoError(err)

	_, err = s.store.GetPlayer(s.ctx, "p_1")
	s.NoError(err)
}

func (s *StoreSuite) TestMigrationsAreIdempotent() {
	path := filepath.Join(s.T().TempDir(), "twice.db")

	store, err := Open(path)
	s.Require().NoError(err)
	s.Require().NoError(store.CreatePlayer(s.ctx, s.newPlayer("p_1", "CC1001")))
	s.Require().NoError(store.Close())

	reopened, err := Open(path)
	s.Require().NoError(err)
	defer func() { _ = reopened.Close() }()

	_, err = reopened.GetPlayer(s.ctx, "p_1")
	s.NoError(err)
}
