package memory

import (
	"context"
	"sync"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu   sync.RWMutex
	data *data
}

// data holds all tables. InTx clones it so a failed transaction can be
// discarded wholesale.
type data struct {
	players       map[model.PlayerID]*model.Player
	documentIndex map[string]model.PlayerID
	sessions      map[string]*model.Session
	items         map[model.ItemID]*model.Item
	itemNameIndex map[string]model.ItemID
	earned        map[model.PlayerID][]model.ItemID
	timeRecords   []model.TimeRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{data: newData()}
}

func newData() *data {
	return &data{
		players:       make(map[model.PlayerID]*model.Player),
		documentIndex: make(map[string]model.PlayerID),
		sessions:      make(map[string]*model.Session),
		items:         make(map[model.ItemID]*model.Item),
		itemNameIndex: make(map[string]model.ItemID),
		earned:        make(map[model.PlayerID][]model.ItemID),
	}
}

func (d *data) clone() *data {
	c := newData()
	for id, p := range d.players {
		cp := *p
		c.players[id] = &cp
	}
	for doc, id := range d.documentIndex {
		c.documentIndex[doc] = id
	}
	for token, s := range d.sessions {
		cs := *s
		c.sessions[token] = &cs
	}
	for id, item := range d.items {
		ci := *item
		c.items[id] = &ci
	}
	for name, id := range d.itemNameIndex {
		c.itemNameIndex[name] = id
	}
	for id, itemIDs := range d.earned {
		c.earned[id] = append([]model.ItemID(nil), itemIDs...)
	}
	c.timeRecords = append([]model.TimeRecord(nil), d.timeRecords...)
	return c
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.createPlayer(player)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.getPlayer(id)
}

func (s *Storage) GetPlayerByDocument(ctx context.Context, document string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.getPlayerByDocument(document)
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.updatePlayer(player)
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.createSession(session)
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.getSession(token)
}

func (s *Storage) DeleteSession(ctx context.Context, token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.deleteSession(token)
}

// Item operations

func (s *Storage) SaveItem(ctx context.Context, item *model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.saveItem(item)
}

func (s *Storage) GetItemByName(ctx context.Context, name string) (*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.getItemByName(name)
}

func (s *Storage) GetItemsByNames(ctx context.Context, names []string) ([]*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.getItemsByNames(names)
}

// Earned item operations

func (s *Storage) HasEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.hasEarnedItem(playerID, itemID)
}

func (s *Storage) AddEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.addEarnedItem(playerID, itemID)
}

func (s *Storage) GetEarnedItems(ctx context.Context, playerID model.PlayerID) ([]*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.getEarnedItems(playerID)
}

// Time record operations

func (s *Storage) AppendTimeRecord(ctx context.Context, record *model.TimeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.appendTimeRecord(record)
}

// InTx clones the dataset, runs fn against the clone, and swaps it in on
// success. The write lock is held for the whole transaction, so concurrent
// requests serialize here.
func (s *Storage) InTx(ctx context.Context, fn func(storage.Storage) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := s.data.clone()
	if err := fn(&txStorage{data: clone}); err != nil {
		return err
	}
	s.data = clone
	return nil
}

// txStorage exposes a data clone through the storage interface without
// touching the outer mutex (the caller already holds it)
type txStorage struct {
	data *data
}

var _ storage.Storage = (*txStorage)(nil)

func (t *txStorage) CreatePlayer(ctx context.Context, player *model.Player) error {
	return t.data.createPlayer(player)
}

func (t *txStorage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return t.data.getPlayer(id)
}

func (t *txStorage) GetPlayerByDocument(ctx context.Context, document string) (*model.Player, error) {
	return t.data.getPlayerByDocument(document)
}

func (t *txStorage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	return t.data.updatePlayer(player)
}

func (t *txStorage) CreateSession(ctx context.Context, session *model.Session) error {
	return t.data.createSession(session)
}

func (t *txStorage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	return t.data.getSession(token)
}

func (t *txStorage) DeleteSession(ctx context.Context, token string) (int, error) {
	return t.data.deleteSession(token)
}

func (t *txStorage) SaveItem(ctx context.Context, item *model.Item) error {
	return t.data.saveItem(item)
}

func (t *txStorage) GetItemByName(ctx context.Context, name string) (*model.Item, error) {
	return t.data.getItemByName(name)
}

func (t *txStorage) GetItemsByNames(ctx context.Context, names []string) ([]*model.Item, error) {
	return t.data.getItemsByNames(names)
}

func (t *txStorage) HasEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) (bool, error) {
	return t.data.hasEarnedItem(playerID, itemID)
}

func (t *txStorage) AddEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) error {
	return t.data.addEarnedItem(playerID, itemID)
}

func (t *txStorage) GetEarnedItems(ctx context.Context, playerID model.PlayerID) ([]*model.Item, error) {
	return t.data.getEarnedItems(playerID)
}

func (t *txStorage) AppendTimeRecord(ctx context.Context, record *model.TimeRecord) error {
	return t.data.appendTimeRecord(record)
}

// Nested transactions join the enclosing one
func (t *txStorage) InTx(ctx context.Context, fn func(storage.Storage) error) error {
	return fn(t)
}
