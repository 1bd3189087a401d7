package repositories

import (
	"context"
	"errors"

	"fable/internal/domain/models"
)

// ErrPresetNotFound is returned when a preset id matches no stored record.
var ErrPresetNotFound = errors.New("preset not found")

// PresetRepository is the storage contract for user-owned presets. The
// backing document store lives outside this module; implementations here
// stand in for it.
type PresetRepository interface {
	// GetByID returns the preset or ErrPresetNotFound.
	GetByID(ctx context.Context, id string) (*models.Preset, error)

	// ListByUser returns the user's presets in insertion order.
	ListByUser(ctx context.Context, userID string) ([]models.Preset, error)

	// Insert stores a new preset. The id must be unique.
	Insert(ctx context.Context, preset *models.Preset) error

	// Update replaces an existing preset or returns ErrPresetNotFound.
	Update(ctx context.Context, preset *models.Preset) error
}
