// Package profile applies validated partial updates to player-editable fields.
package profile

import (
	"context"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/services/view"
	"github.com/libroquest/gamebook-server/internal/storage"
)

// Patch describes a partial update. A nil field means "leave unchanged";
// a present pointer applies, including present-but-empty values. School and
// gender are validated against their enums before anything mutates.
//
// Money and Level are set directly when present: level bypasses the
// progression cap as an administrative override, and money replaces the
// stored decimal text as-is, matching the source system.
type Patch struct {
	Name   *string
	School *string
	Gender *string
	Money  *string
	Level  *int
}

// Service applies profile patches
type Service struct {
	storage storage.Storage
}

// New creates a new profile Service
func New(st storage.Storage) *Service {
	return &Service{storage: st}
}

// Update applies the patch to the player and returns the refreshed view.
// Validation happens before any write, so a rejected patch leaves no
// partial state.
func (s *Service) Update(ctx context.Context, playerID model.PlayerID, patch Patch) (*model.PlayerView, error) {
	var school model.School
	var gender model.Gender
	var err error

	if patch.School != nil {
		if school, err = model.ParseSchool(*patch.School); err != nil {
			return nil, err
		}
	}
	if patch.Gender != nil {
		if gender, err = model.ParseGender(*patch.Gender); err != nil {
			return nil, err
		}
	}
	if patch.Level != nil && *patch.Level < model.MinLevel {
		return nil, model.ErrInvalidLevel
	}

	var playerView *model.PlayerView
	err = s.storage.InTx(ctx, func(tx storage.Storage) error {
		player, err := tx.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			player.Name = *patch.Name
		}
		if patch.School != nil {
			player.School = school
		}
		if patch.Gender != nil {
			player.Gender = gender
		}
		if patch.Money != nil {
			player.Money = *patch.Money
		}
		if patch.Level != nil {
			player.Level = *patch.Level
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
