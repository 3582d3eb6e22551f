// Package view assembles the externally visible player read-model.
package view

import (
	"context"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/storage"
)

// Assembler builds PlayerViews from store state. Assembly is a pure read.
type Assembler struct {
	storage storage.Storage
}

// New creates a new Assembler
func New(st storage.Storage) *Assembler {
	return &Assembler{storage: st}
}

// Assemble loads a player and joins in their earned items
func (a *Assembler) Assemble(ctx context.Context, playerID model.PlayerID) (*model.PlayerView, error) {
	player, err := a.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return Compose(ctx, a.storage, player)
}

// Compose joins an already-loaded player with their earned items. Callers
// inside a transaction pass the transactional store so the view reflects
// uncommitted writes.
func Compose(ctx context.Context, st storage.Storage, player *model.Player) (*model.PlayerView, error) {
	earned, err := st.GetEarnedItems(ctx, player.ID)
	if err != nil {
		return nil, err
	}

	items := make([]model.Item, len(earned))
	for i, item := range earned {
		items[i] = *item
	}

	return &model.PlayerView{
		Player: *player,
		Items:  items,
	}, nil
}
