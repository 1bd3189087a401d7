package preset

import (
	"fable/internal/domain/models"
)

// Input carries everything the resolution chain may consult. All fields
// are read-only; Resolve never mutates them.
type Input struct {
	// Ref is the chat's stored preset reference.
	Ref models.PresetRef
	// InlineSettings are the chat's own gen settings, when it has any.
	InlineSettings *models.GenSettings
	// UserPresets are the requesting user's presets.
	UserPresets []models.Preset
	// Catalog is the built-in preset catalog.
	Catalog *Catalog
	// Service is the active generation service id.
	Service string
	// DefaultPresets is the user's per-service default map; nil means the
	// user never configured one.
	DefaultPresets map[string]string
}

// Resolved is the parameter set in effect for a chat, with provenance.
// Editable is false for built-in and synthesized fallback presets.
type Resolved struct {
	Name     string
	ID       string
	Settings models.GenSettings
	Editable bool
}

// resolverFunc is one tier of the chain: a pure lookup returning nil when
// the tier does not apply or finds nothing.
type resolverFunc func(Input) *Resolved

// resolvers in precedence order; the first non-nil result wins.
var resolvers = []resolverFunc{
	resolveBuiltin,
	resolveInline,
	resolveServiceDefault,
	resolveUserPreset,
}

// Resolve walks the tiers and returns the effective parameter set, or nil
// when the reference resolves to nothing (the caller decides whether that
// is a misconfiguration or grounds for a silent fallback). Resolution is a
// pure lookup: no side effects, safe for concurrent use.
func Resolve(in Input) *Resolved {
	for _, tier := range resolvers {
		if r := tier(in); r != nil {
			return r
		}
	}
	return nil
}

// resolveBuiltin handles a reference naming a built-in catalog id.
func resolveBuiltin(in Input) *Resolved {
	id, ok := in.Ref.PresetID()
	if !ok || in.Catalog == nil {
		return nil
	}
	builtin, ok := in.Catalog.Get(id)
	if !ok {
		return nil
	}
	return &Resolved{
		Name:     builtin.Name,
		ID:       builtin.ID,
		Settings: builtin.Settings,
		Editable: false,
	}
}

// resolveInline handles "use the chat's own settings". An unset reference
// with inline settings present also lands here: the chat was configured
// before it ever chose a preset.
func resolveInline(in Input) *Resolved {
	explicit := in.Ref.IsChat()
	implied := in.Ref.Kind == models.PresetRefUnset && in.InlineSettings != nil
	if !explicit && !implied {
		return nil
	}

	var settings models.GenSettings
	if in.InlineSettings != nil {
		settings = *in.InlineSettings
	}
	return &Resolved{
		Name:     "Chat Settings",
		Settings: settings,
		Editable: true,
	}
}

// resolveServiceDefault handles "use the service default", consulting the
// user's per-service default map when one exists and synthesizing the
// hard-coded fallback when it does not.
func resolveServiceDefault(in Input) *Resolved {
	explicit := in.Ref.IsService()
	implied := in.Ref.Kind == models.PresetRefUnset && in.InlineSettings == nil
	if !explicit && !implied {
		return nil
	}

	if in.DefaultPresets == nil {
		fallback := FallbackFor(in.Service)
		name := "Fallback Preset"
		if fallback.Name != "" {
			name = fallback.Name + " - Fallback Preset"
		}
		return &Resolved{
			Name:     name,
			ID:       fallback.ID,
			Settings: fallback.Settings,
			Editable: false,
		}
	}

	id := in.DefaultPresets[in.Service]
	if id == "" {
		return nil // unconfigured for this service
	}

	// A built-in default is still read-only and annotated as a fallback.
	if in.Catalog != nil {
		if builtin, ok := in.Catalog.Get(id); ok {
			return &Resolved{
				Name:     builtin.Name + " - Fallback Preset",
				ID:       builtin.ID,
				Settings: builtin.Settings,
				Editable: false,
			}
		}
	}

	for _, p := range in.UserPresets {
		if p.ID == id {
			return &Resolved{
				Name:     p.Name + " - Service Preset",
				ID:       p.ID,
				Settings: p.Settings,
				Editable: true,
			}
		}
	}
	return nil // configured id resolves to nothing
}

// resolveUserPreset handles a reference naming a user-owned preset id.
// Built-in ids never reach here: they are caught by resolveBuiltin, and
// the two id spaces are disjoint.
func resolveUserPreset(in Input) *Resolved {
	id, ok := in.Ref.PresetID()
	if !ok {
		return nil
	}
	for _, p := range in.UserPresets {
		if p.ID == id {
			return &Resolved{
				Name:     p.Name,
				ID:       p.ID,
				Settings: p.Settings,
				Editable: true,
			}
		}
	}
	return nil
}
