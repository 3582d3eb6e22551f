package storage

import (
	"context"

	"github.com/libroquest/gamebook-server/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	// CreatePlayer returns model.ErrDocumentTaken if the document is already
	// registered.
	CreatePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByDocument(ctx context.Context, document string) (*model.Player, error)
	UpdatePlayer(ctx context.Context, player *model.Player) error

	// Session operations
	// CreateSession returns model.ErrDuplicateToken if the token collides
	// with an existing row. Given 256 bits of token entropy this is treated
	// as a fatal integrity error, not retried.
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	// DeleteSession removes matching rows and reports how many were removed
	DeleteSession(ctx context.Context, token string) (int, error)

	// Item catalog operations (reference data)
	SaveItem(ctx context.Context, item *model.Item) error
	GetItemByName(ctx context.Context, name string) (*model.Item, error)
	GetItemsByNames(ctx context.Context, names []string) ([]*model.Item, error)

	// Earned item operations
	HasEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) (bool, error)
	AddEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) error
	GetEarnedItems(ctx context.Context, playerID model.PlayerID) ([]*model.Item, error)

	// Time record operations (append-only)
	AppendTimeRecord(ctx context.Context, record *model.TimeRecord) error

	// InTx runs fn against a transactional view of the store. Writes made by
	// fn become visible atomically on success and are discarded if fn
	// returns an error, to the extent the backend supports rollback.
	InTx(ctx context.Context, fn func(Storage) error) error
}
