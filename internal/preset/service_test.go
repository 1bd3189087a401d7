package preset

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"fable/internal/domain/models"
	"fable/internal/domain/repositories"
	"fable/internal/repository/memory"
)

func testService(t *testing.T) *Service {
	t.Helper()
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog() unexpected error: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(memory.NewPresetRepository(), catalog, logger)
}

func validSettings() models.GenSettings {
	return models.GenSettings{
		Service:           models.ServiceKobold,
		Temp:              0.85,
		TopP:              1.0,
		TypicalP:          1.0,
		RepetitionPenalty: 1.1,
		MaxTokens:         80,
		MaxContextLength:  2048,
		Order:             []int{0, 1, 2},
	}
}

func TestCreateAndUpdatePreset(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreatePreset(ctx, "user-1", "My Preset", validSettings())
	if err != nil {
		t.Fatalf("CreatePreset() unexpected error: %v", err)
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", created.ID, err)
	}

	next := validSettings()
	next.Temp = 0.42
	updated, err := svc.UpdatePreset(ctx, created.ID, next)
	if err != nil {
		t.Fatalf("UpdatePreset() unexpected error: %v", err)
	}
	if updated.Settings.Temp != 0.42 {
		t.Errorf("Temp = %v, want 0.42", updated.Settings.Temp)
	}

	listed, err := svc.ListPresets(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListPresets() unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("ListPresets() = %+v, want the created preset", listed)
	}
}

func TestUpdateBuiltinNotEditable(t *testing.T) {
	svc := testService(t)

	_, err := svc.UpdatePreset(context.Background(), "basic", validSettings())
	if !errors.Is(err, ErrNotEditable) {
		t.Errorf("UpdatePreset(basic) error = %v, want ErrNotEditable", err)
	}
}

func TestUpdateUnknownPreset(t *testing.T) {
	svc := testService(t)

	_, err := svc.UpdatePreset(context.Background(), uuid.NewString(), validSettings())
	if !errors.Is(err, repositories.ErrPresetNotFound) {
		t.Errorf("UpdatePreset(unknown) error = %v, want ErrPresetNotFound", err)
	}
}

func TestCreatePresetValidation(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		preset string
		mutate func(*models.GenSettings)
	}{
		{
			name:   "zero max tokens",
			preset: "p",
			mutate: func(s *models.GenSettings) { s.MaxTokens = 0 },
		},
		{
			name:   "excessive max tokens",
			preset: "p",
			mutate: func(s *models.GenSettings) { s.MaxTokens = 1 << 20 },
		},
		{
			name:   "negative temperature",
			preset: "p",
			mutate: func(s *models.GenSettings) { s.Temp = -1 },
		},
		{
			name:   "empty name",
			preset: "",
			mutate: func(s *models.GenSettings) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validSettings()
			tt.mutate(&settings)
			if _, err := svc.CreatePreset(ctx, "user-1", tt.preset, settings); err == nil {
				t.Error("CreatePreset() expected validation error, got nil")
			}
		})
	}
}

func TestUpdatePresetBadSamplerOrder(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreatePreset(ctx, "user-1", "My Preset", validSettings())
	if err != nil {
		t.Fatalf("CreatePreset() unexpected error: %v", err)
	}

	bad := validSettings()
	bad.Order = []int{0, 1, 1}
	_, err = svc.UpdatePreset(ctx, created.ID, bad)

	var orderErr *InvalidSamplerOrderError
	if !errors.As(err, &orderErr) {
		t.Fatalf("UpdatePreset() error = %v, want *InvalidSamplerOrderError", err)
	}
	if orderErr.Value != "1" {
		t.Errorf("offending value = %q, want %q", orderErr.Value, "1")
	}
}

func TestGetPresetCoversBothNamespaces(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	builtin, err := svc.GetPreset(ctx, "novel")
	if err != nil {
		t.Fatalf("GetPreset(novel) unexpected error: %v", err)
	}
	if builtin.Name != "Novel" {
		t.Errorf("builtin.Name = %q, want %q", builtin.Name, "Novel")
	}

	created, err := svc.CreatePreset(ctx, "user-1", "Mine", validSettings())
	if err != nil {
		t.Fatalf("CreatePreset() unexpected error: %v", err)
	}
	mine, err := svc.GetPreset(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPreset(user preset) unexpected error: %v", err)
	}
	if mine.Name != "Mine" {
		t.Errorf("mine.Name = %q, want %q", mine.Name, "Mine")
	}
}
