// Package redis provides the Redis-backed storage implementation.
//
// Entities are stored as JSON values with auxiliary index keys, mirroring
// the relational layout: a document index for login, an item-name index for
// reward lookup, a SET per player of earned item IDs and a LIST per player
// of time rows. Session keys additionally expire via native TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config

	// txMu serializes InTx blocks. Redis has no multi-statement rollback
	// for read-then-write flows, so transactions are mutex-serialized and
	// best effort; see the concurrency notes in DESIGN.md.
	txMu sync.Mutex
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// The document index is the uniqueness guard: claim it first
	claimed, err := s.client.SetNX(ctx, documentIndexKey(player.Document), string(player.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrDocumentTaken
	}

	return s.client.Set(ctx, playerKey(player.ID), data, 0).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByDocument(ctx context.Context, document string) (*model.Player, error) {
	playerID, err := s.client.Get(ctx, documentIndexKey(document)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.GetPlayer(ctx, model.PlayerID(playerID))
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	exists, err := s.client.Exists(ctx, playerKey(player.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(player.ID), data, 0).Err()
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// The TTL is the session's own lifetime, not a wall-clock delta, so it
	// stays correct under an injected clock
	ttl := session.ExpiresAt.Sub(session.CreatedAt)
	if ttl <= 0 {
		ttl = time.Second
	}

	created, err := s.client.SetNX(ctx, sessionKey(session.Token), data, ttl).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrDuplicateToken
	}
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) (int, error) {
	deleted, err := s.client.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

// Item catalog operations

func (s *Storage) SaveItem(ctx context.Context, item *model.Item) error {
	if item.ID == "" {
		item.ID = model.ItemIDFor(item.Name)
	}

	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, itemKey(item.ID), data, 0)
	pipe.Set(ctx, itemNameIndexKey(item.Name), string(item.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) getItem(ctx context.Context, id model.ItemID) (*model.Item, error) {
	data, err := s.client.Get(ctx, itemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrItemNotFound
		}
		return nil, err
	}

	var item model.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Storage) GetItemByName(ctx context.Context, name string) (*model.Item, error) {
	itemID, err := s.client.Get(ctx, itemNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrItemNotFound
		}
		return nil, err
	}
	return s.getItem(ctx, model.ItemID(itemID))
}

func (s *Storage) GetItemsByNames(ctx context.Context, names []string) ([]*model.Item, error) {
	var items []*model.Item
	for _, name := range names {
		item, err := s.GetItemByName(ctx, name)
		if err != nil {
			if errors.Is(err, model.ErrItemNotFound) {
				// Names missing from the catalog are skipped, not an error
				continue
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Earned item operations

func (s *Storage) HasEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) (bool, error) {
	return s.client.SIsMember(ctx, earnedItemsKey(playerID), string(itemID)).Result()
}

func (s *Storage) AddEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) error {
	if _, err := s.getItem(ctx, itemID); err != nil {
		return err
	}
	// SADD is idempotent, which matches the at-most-one-link invariant
	return s.client.SAdd(ctx, earnedItemsKey(playerID), string(itemID)).Err()
}

func (s *Storage) GetEarnedItems(ctx context.Context, playerID model.PlayerID) ([]*model.Item, error) {
	itemIDs, err := s.client.SMembers(ctx, earnedItemsKey(playerID)).Result()
	if err != nil {
		return nil, err
	}

	var items []*model.Item
	for _, id := range itemIDs {
		item, err := s.getItem(ctx, model.ItemID(id))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Time record operations

func (s *Storage) AppendTimeRecord(ctx context.Context, record *model.TimeRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, timeRecordsKey(record.PlayerID), data).Err()
}

// InTx serializes fn against other transactions on this store. Writes apply
// as fn makes them; a mid-transaction failure is not rolled back.
func (s *Storage) InTx(ctx context.Context, fn func(storage.Storage) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(&txStorage{s})
}

// txStorage avoids re-locking txMu for nested transactions
type txStorage struct {
	*Storage
}

func (t *txStorage) InTx(ctx context.Context, fn func(storage.Storage) error) error {
	return fn(t)
}
