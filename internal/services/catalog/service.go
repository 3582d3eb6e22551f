// Package catalog manages the item catalog reference data.
package catalog

import (
	"context"
	"log/slog"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/storage"
)

// defaultItems is the catalog the reward table draws from. Items are
// reference data: seeded at startup, never created by the API.
var defaultItems = []model.Item{
	{Name: "cinturon", ItemType: model.ItemTypeArmadura},
	{Name: "pechera", ItemType: model.ItemTypeArmadura},
	{Name: "botas", ItemType: model.ItemTypeArmadura},
	{Name: "casco", ItemType: model.ItemTypeArmadura},
	{Name: "cristal-rojo", ItemType: model.ItemTypeCristal},
	{Name: "cristal-amarillo", ItemType: model.ItemTypeCristal},
	{Name: "cristal-gris", ItemType: model.ItemTypeCristal},
	{Name: "cristal-verde", ItemType: model.ItemTypeCristal},
}

// Service seeds and queries the item catalog
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new catalog Service
func New(st storage.Storage, logger *slog.Logger) *Service {
	return &Service{storage: st, logger: logger}
}

// EnsureDefaults idempotently seeds the default reward items
func (s *Service) EnsureDefaults(ctx context.Context) error {
	for i := range defaultItems {
		item := defaultItems[i]
		if err := s.storage.SaveItem(ctx, &item); err != nil {
			return err
		}
	}
	s.logger.Info("item catalog seeded", slog.Int("items", len(defaultItems)))
	return nil
}

// Lookup returns a catalog item by its unique name
func (s *Service) Lookup(ctx context.Context, name string) (*model.Item, error) {
	return s.storage.GetItemByName(ctx, name)
}
