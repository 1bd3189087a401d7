package preset

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"fable/internal/config"
	"fable/internal/domain/models"
	"fable/internal/domain/repositories"
)

// Service owns user preset mutations. Built-in presets are served from the
// catalog and rejected from every mutation path.
type Service struct {
	repo    repositories.PresetRepository
	catalog *Catalog
	logger  *slog.Logger
}

func NewService(
	repo repositories.PresetRepository,
	catalog *Catalog,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

// CreatePreset stores a new user-owned preset. Ids are generated UUIDs,
// keeping them out of the built-in slug namespace.
func (s *Service) CreatePreset(ctx context.Context, userID, name string, settings models.GenSettings) (*models.Preset, error) {
	if err := validateName(name); err != nil {
		return nil, fmt.Errorf("validate preset name: %w", err)
	}
	if err := validateSettings(&settings); err != nil {
		return nil, err
	}

	preset := &models.Preset{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Settings: settings,
	}
	if err := s.repo.Insert(ctx, preset); err != nil {
		return nil, fmt.Errorf("insert preset: %w", err)
	}

	s.logger.Info("preset created",
		"preset_id", preset.ID,
		"user_id", userID,
		"service", settings.Service,
	)
	return preset, nil
}

// UpdatePreset replaces a user-owned preset's parameters. Edits against a
// built-in id fail with ErrNotEditable before any mutation.
func (s *Service) UpdatePreset(ctx context.Context, id string, settings models.GenSettings) (*models.Preset, error) {
	if s.catalog.IsBuiltin(id) {
		return nil, ErrNotEditable
	}
	if err := validateSettings(&settings); err != nil {
		return nil, err
	}

	preset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get preset: %w", err)
	}

	preset.Settings = settings
	if err := s.repo.Update(ctx, preset); err != nil {
		return nil, fmt.Errorf("update preset: %w", err)
	}

	s.logger.Info("preset updated",
		"preset_id", preset.ID,
		"user_id", preset.UserID,
		"service", settings.Service,
	)
	return preset, nil
}

// GetPreset returns a preset by id, built-in or user-owned.
func (s *Service) GetPreset(ctx context.Context, id string) (*models.Preset, error) {
	if builtin, ok := s.catalog.Get(id); ok {
		return &builtin, nil
	}
	preset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get preset: %w", err)
	}
	return preset, nil
}

// ListPresets returns the user's presets in insertion order.
func (s *Service) ListPresets(ctx context.Context, userID string) ([]models.Preset, error) {
	presets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	return presets, nil
}

func validateName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxPresetNameLength),
	)
}

// validateSettings rejects a parameter set before it is accepted. The
// sampler order check reports the offending value via
// *InvalidSamplerOrderError.
func validateSettings(settings *models.GenSettings) error {
	// Checked outside ValidateStruct so callers see the typed
	// *InvalidSamplerOrderError with the offending value.
	if err := validateSamplerOrder(settings.Order); err != nil {
		return err
	}

	return validation.ValidateStruct(settings,
		validation.Field(&settings.Temp, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&settings.TopP, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&settings.TopK, validation.Min(0)),
		validation.Field(&settings.TopA, validation.Min(0.0)),
		validation.Field(&settings.TypicalP, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&settings.TailFreeSampling, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&settings.RepetitionPenalty, validation.Min(0.0)),
		validation.Field(&settings.RepetitionPenaltyRange, validation.Min(0)),
		validation.Field(&settings.MaxTokens,
			validation.Required,
			validation.Min(1),
			validation.Max(config.MaxGenTokens),
		),
		validation.Field(&settings.MaxContextLength,
			validation.Min(0),
			validation.Max(config.MaxContextTokens),
		),
		validation.Field(&settings.StopSequences, validation.Length(0, config.MaxStopSequences)),
	)
}
