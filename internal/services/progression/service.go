// Package progression applies the level-completion state transition.
package progression

import (
	"context"
	"errors"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/services/view"
	"github.com/libroquest/gamebook-server/internal/storage"
)

// Errors
var (
	ErrNegativeCoins = errors.New("coins earned must be non-negative")
	ErrNegativeTime  = errors.New("time spent must be non-negative")
)

// Service applies level completions: level increment up to the cap,
// currency accrual, time logging and idempotent reward grants
type Service struct {
	storage storage.Storage
}

// New creates a new progression Service
func New(st storage.Storage) *Service {
	return &Service{storage: st}
}

// CompleteLevel records that the player finished their current level.
//
// The whole transition commits atomically: level change, balance change,
// time row and reward grants succeed or fail together. At the level cap the
// level no longer moves, but time is still logged and rewards for the
// just-completed level are re-evaluated, matching the reward table keyed by
// level-1 after the increment. Grants are idempotent, so repeat calls never
// duplicate items.
func (s *Service) CompleteLevel(ctx context.Context, playerID model.PlayerID, coinsEarned, timeSpentSeconds int64) (*model.PlayerView, error) {
	if coinsEarned < 0 {
		return nil, ErrNegativeCoins
	}
	if timeSpentSeconds < 0 {
		return nil, ErrNegativeTime
	}

	var playerView *model.PlayerView
	err := s.storage.InTx(ctx, func(tx storage.Storage) error {
		player, err := tx.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		// Parse before any write so a corrupt balance leaves no partial state
		balance, err := player.MoneyValue()
		if err != nil {
			return err
		}

		if player.Level < model.MaxLevel {
			player.Level++
		}
		completedLevel := player.Level - 1

		player.SetMoney(balance + coinsEarned)

		if err := tx.AppendTimeRecord(ctx, &model.TimeRecord{
			PlayerID: player.ID,
			Level:    completedLevel,
			Seconds:  timeSpentSeconds,
		}); err != nil {
			return err
		}

		if err := s.grantRewards(ctx, tx, player.ID, completedLevel); err != nil {
			return err
		}

		if err := tx.UpdatePlayer(ctx, player); err != nil {
			return err
		}

		playerView, err = view.Compose(ctx, tx, player)
		return err
	})
	if err != nil {
		return nil, err
	}
	return playerView, nil
}

// grantRewards links each configured reward item to the player at most once.
// Reward names missing from the catalog are skipped.
func (s *Service) grantRewards(ctx context.Context, tx storage.Storage, playerID model.PlayerID, completedLevel int) error {
	names := RewardsForLevel(completedLevel)
	if len(names) == 0 {
		return nil
	}

	items, err := tx.GetItemsByNames(ctx, names)
	if err != nil {
		return err
	}

	for _, item := range items {
		has, err := tx.HasEarnedItem(ctx, playerID, item.ID)
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if err := tx.AddEarnedItem(ctx, playerID, item.ID); err != nil {
			return err
		}
	}
	return nil
}
