package preset

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog() unexpected error: %v", err)
	}

	builtins := catalog.List()
	if len(builtins) == 0 {
		t.Fatal("catalog is empty")
	}

	// File order is preserved.
	wantOrder := []string{"basic", "horde", "novel", "turbo"}
	if len(builtins) != len(wantOrder) {
		t.Fatalf("catalog size = %d, want %d", len(builtins), len(wantOrder))
	}
	for i, id := range wantOrder {
		if builtins[i].ID != id {
			t.Errorf("List()[%d].ID = %q, want %q", i, builtins[i].ID, id)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog() unexpected error: %v", err)
	}

	basic, ok := catalog.Get("basic")
	if !ok {
		t.Fatal("Get(basic) not found")
	}
	if basic.Name != "Simple" {
		t.Errorf("basic.Name = %q, want %q", basic.Name, "Simple")
	}
	if basic.Settings.MaxTokens != 80 {
		t.Errorf("basic.Settings.MaxTokens = %d, want 80", basic.Settings.MaxTokens)
	}
	if basic.UserID != "" {
		t.Errorf("built-in preset has an owner: %q", basic.UserID)
	}

	if !catalog.IsBuiltin("novel") {
		t.Error("IsBuiltin(novel) = false, want true")
	}
	if catalog.IsBuiltin("no-such-preset") {
		t.Error("IsBuiltin(no-such-preset) = true, want false")
	}
}

func TestBuiltinIDNamespaceDisjoint(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog() unexpected error: %v", err)
	}

	// Built-in ids must never parse as UUIDs, and generated user-owned
	// ids must never collide with the catalog key set.
	for _, builtin := range catalog.List() {
		if _, err := uuid.Parse(builtin.ID); err == nil {
			t.Errorf("built-in id %q parses as a UUID", builtin.ID)
		}
	}

	for i := 0; i < 100; i++ {
		id := uuid.NewString()
		if catalog.IsBuiltin(id) {
			t.Fatalf("generated id %q found in built-in catalog", id)
		}
	}
}
