package memory

import (
	"context"
	"fmt"
	"sync"

	"fable/internal/domain/models"
	"fable/internal/domain/repositories"
)

// PresetRepository is an in-memory PresetRepository implementation. It
// stands in for the external document store in tests and the CLI.
type PresetRepository struct {
	mu      sync.RWMutex
	presets map[string]models.Preset
	order   []string
}

func NewPresetRepository() *PresetRepository {
	return &PresetRepository{
		presets: make(map[string]models.Preset),
	}
}

func (r *PresetRepository) GetByID(ctx context.Context, id string) (*models.Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	preset, ok := r.presets[id]
	if !ok {
		return nil, repositories.ErrPresetNotFound
	}
	return &preset, nil
}

func (r *PresetRepository) ListByUser(ctx context.Context, userID string) ([]models.Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Preset
	for _, id := range r.order {
		if preset := r.presets[id]; preset.UserID == userID {
			out = append(out, preset)
		}
	}
	return out, nil
}

func (r *PresetRepository) Insert(ctx context.Context, preset *models.Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.presets[preset.ID]; exists {
		return fmt.Errorf("preset %q already exists", preset.ID)
	}
	r.presets[preset.ID] = *preset
	r.order = append(r.order, preset.ID)
	return nil
}

func (r *PresetRepository) Update(ctx context.Context, preset *models.Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.presets[preset.ID]; !exists {
		return repositories.ErrPresetNotFound
	}
	r.presets[preset.ID] = *preset
	return nil
}
