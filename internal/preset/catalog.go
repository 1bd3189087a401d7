package preset

import (
	"embed"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"fable/internal/domain/models"
)

//go:embed config/*.yaml
var catalogFiles embed.FS

// Catalog holds the built-in, read-only preset set shipped with the
// system. Built-in ids are slugs; the loader enforces that none of them
// parses as a UUID so the built-in and user-owned id spaces never
// intersect.
type Catalog struct {
	presets map[string]models.Preset
	order   []string
	mu      sync.RWMutex
}

// NewCatalog loads the embedded catalog YAML.
func NewCatalog() (*Catalog, error) {
	data, err := catalogFiles.ReadFile("config/presets.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	c := &Catalog{presets: make(map[string]models.Preset, len(file.Presets))}
	for _, preset := range file.Presets {
		if _, err := uuid.Parse(preset.ID); err == nil {
			return nil, fmt.Errorf("built-in preset id %q collides with the user-owned id space", preset.ID)
		}
		c.presets[preset.ID] = preset
		c.order = append(c.order, preset.ID)
	}
	return c, nil
}

// Get returns the built-in preset for id.
func (c *Catalog) Get(id string) (models.Preset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	preset, ok := c.presets[id]
	return preset, ok
}

// IsBuiltin reports whether id names a built-in preset.
func (c *Catalog) IsBuiltin(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.presets[id]
	return ok
}

// List returns the built-in presets in catalog order.
func (c *Catalog) List() []models.Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Preset, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.presets[id])
	}
	return out
}

// catalogFile is the on-disk catalog shape. Presets are keyed by id in
// YAML; a custom unmarshaler preserves file order.
type catalogFile struct {
	Presets []models.Preset
}

// UnmarshalYAML implements custom YAML unmarshaling to preserve preset
// order from the catalog file.
func (f *catalogFile) UnmarshalYAML(node *yaml.Node) error {
	// Decode presets into a map first to get the full data
	type presetsOnly struct {
		Presets map[string]models.Preset `yaml:"presets"`
	}
	var m presetsOnly
	if err := node.Decode(&m); err != nil {
		return err
	}

	// Now extract preset keys in YAML order and build the slice
	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value != "presets" {
			continue
		}
		presetsNode := node.Content[i+1]
		// presetsNode.Content alternates: key, value, key, value...
		for j := 0; j < len(presetsNode.Content); j += 2 {
			id := presetsNode.Content[j].Value
			if preset, ok := m.Presets[id]; ok {
				preset.ID = id
				f.Presets = append(f.Presets, preset)
			}
		}
		break
	}

	return nil
}
