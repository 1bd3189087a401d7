package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Known generation service ids. A service is the external backend a
// generation request targets.
const (
	ServiceHorde  = "horde"
	ServiceKobold = "kobold"
	ServiceNovel  = "novel"
	ServiceOpenAI = "openai"
	ServiceOoba   = "ooba"
)

// GenSettings is a flat set of generation knobs handed unmodified to the
// transport layer. Order lists the sampler application order; an empty
// slice means the service default order.
type GenSettings struct {
	Service                string   `json:"service" yaml:"service"`
	Temp                   float64  `json:"temp" yaml:"temp"`
	TopP                   float64  `json:"top_p" yaml:"top_p"`
	TopK                   int      `json:"top_k" yaml:"top_k"`
	TopA                   float64  `json:"top_a" yaml:"top_a"`
	TypicalP               float64  `json:"typical_p" yaml:"typical_p"`
	TailFreeSampling       float64  `json:"tail_free_sampling" yaml:"tail_free_sampling"`
	RepetitionPenalty      float64  `json:"repetition_penalty" yaml:"repetition_penalty"`
	RepetitionPenaltyRange int      `json:"repetition_penalty_range" yaml:"repetition_penalty_range"`
	RepetitionPenaltySlope float64  `json:"repetition_penalty_slope" yaml:"repetition_penalty_slope"`
	MaxTokens              int      `json:"max_tokens" yaml:"max_tokens"`
	MaxContextLength       int      `json:"max_context_length" yaml:"max_context_length"`
	StopSequences          []string `json:"stop_sequences,omitempty" yaml:"stop_sequences,omitempty"`
	Order                  []int    `json:"order,omitempty" yaml:"order,omitempty"`
}

// Preset is a named, reusable GenSettings. Built-in presets have slug ids
// and an empty UserID; user-owned presets have generated UUID ids. The two
// id spaces are disjoint by construction.
type Preset struct {
	ID       string      `json:"id" yaml:"-"`
	UserID   string      `json:"user_id,omitempty" yaml:"-"`
	Name     string      `json:"name" yaml:"name"`
	Settings GenSettings `json:"settings" yaml:",inline"`
}

// PresetRefKind discriminates the tri-state preset reference stored on a
// chat record.
type PresetRefKind string

const (
	// PresetRefUnset means the chat never chose; resolution infers chat
	// inline settings when present, otherwise the service default.
	PresetRefUnset PresetRefKind = ""
	// PresetRefChat means "use the chat's inline gen settings".
	PresetRefChat PresetRefKind = "chat"
	// PresetRefService means "use the service default preset".
	PresetRefService PresetRefKind = "service"
	// PresetRefID means "use the preset named by ID" (built-in or user-owned).
	PresetRefID PresetRefKind = "preset"
)

// PresetRef is the chat's stored preset reference. The JSON wire form is a
// plain string ("chat", "service", or a preset id) or null; presence
// tracking follows the same tri-state unmarshaling approach used for
// PATCH-style optional fields.
type PresetRef struct {
	Kind PresetRefKind
	ID   string
}

// IsChat reports whether the reference selects the chat's inline settings.
func (r PresetRef) IsChat() bool { return r.Kind == PresetRefChat }

// IsService reports whether the reference selects the service default.
func (r PresetRef) IsService() bool { return r.Kind == PresetRefService }

// PresetID returns the referenced preset id, if the reference names one.
func (r PresetRef) PresetID() (string, bool) {
	if r.Kind == PresetRefID {
		return r.ID, true
	}
	return "", false
}

// MarshalJSON implements json.Marshaler.
func (r PresetRef) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case PresetRefUnset:
		return []byte("null"), nil
	case PresetRefChat, PresetRefService:
		return json.Marshal(string(r.Kind))
	case PresetRefID:
		return json.Marshal(r.ID)
	default:
		return nil, fmt.Errorf("unknown preset ref kind %q", r.Kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *PresetRef) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*r = PresetRef{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "":
		*r = PresetRef{}
	case string(PresetRefChat):
		*r = PresetRef{Kind: PresetRefChat}
	case string(PresetRefService):
		*r = PresetRef{Kind: PresetRefService}
	default:
		*r = PresetRef{Kind: PresetRefID, ID: s}
	}
	return nil
}

// MarshalYAML mirrors the JSON wire form for scene files.
func (r PresetRef) MarshalYAML() (interface{}, error) {
	switch r.Kind {
	case PresetRefUnset:
		return nil, nil
	case PresetRefChat, PresetRefService:
		return string(r.Kind), nil
	default:
		return r.ID, nil
	}
}

// UnmarshalYAML mirrors the JSON wire form for scene files.
func (r *PresetRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	switch s {
	case "":
		*r = PresetRef{}
	case string(PresetRefChat):
		*r = PresetRef{Kind: PresetRefChat}
	case string(PresetRefService):
		*r = PresetRef{Kind: PresetRefService}
	default:
		*r = PresetRef{Kind: PresetRefID, ID: s}
	}
	return nil
}
