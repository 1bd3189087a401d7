package memory

import (
	"context"
	"errors"
	"testing"

	"fable/internal/domain/models"
	"fable/internal/domain/repositories"
)

func TestPresetRepository(t *testing.T) {
	repo := NewPresetRepository()
	ctx := context.Background()

	first := models.Preset{ID: "p1", UserID: "u1", Name: "First"}
	second := models.Preset{ID: "p2", UserID: "u1", Name: "Second"}
	other := models.Preset{ID: "p3", UserID: "u2", Name: "Other"}
	for _, p := range []models.Preset{first, second, other} {
		if err := repo.Insert(ctx, &p); err != nil {
			t.Fatalf("Insert(%s) unexpected error: %v", p.ID, err)
		}
	}

	if err := repo.Insert(ctx, &first); err == nil {
		t.Error("Insert() of duplicate id succeeded, want error")
	}

	got, err := repo.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID(p1) unexpected error: %v", err)
	}
	if got.Name != "First" {
		t.Errorf("GetByID(p1).Name = %q, want %q", got.Name, "First")
	}

	// Returned values are copies; mutating them must not leak back.
	got.Name = "Mutated"
	again, err := repo.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID(p1) unexpected error: %v", err)
	}
	if again.Name != "First" {
		t.Errorf("stored preset changed through a returned copy: %q", again.Name)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, repositories.ErrPresetNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrPresetNotFound", err)
	}

	listed, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser(u1) unexpected error: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != "p1" || listed[1].ID != "p2" {
		t.Errorf("ListByUser(u1) = %+v, want p1 then p2", listed)
	}

	updated := second
	updated.Name = "Renamed"
	if err := repo.Update(ctx, &updated); err != nil {
		t.Fatalf("Update(p2) unexpected error: %v", err)
	}
	got, err = repo.GetByID(ctx, "p2")
	if err != nil {
		t.Fatalf("GetByID(p2) unexpected error: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("GetByID(p2).Name = %q, want %q", got.Name, "Renamed")
	}

	missing := models.Preset{ID: "missing"}
	if err := repo.Update(ctx, &missing); !errors.Is(err, repositories.ErrPresetNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrPresetNotFound", err)
	}
}
