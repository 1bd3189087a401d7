package models

import "time"

// PersonaKind selects the textual layout used when a persona is flattened
// into prompt text.
type PersonaKind string

const (
	PersonaWPP      PersonaKind = "wpp"
	PersonaSBF      PersonaKind = "sbf"
	PersonaBoostyle PersonaKind = "boostyle"
	PersonaText     PersonaKind = "text"
)

// Persona holds free-form character attributes keyed by trait name.
// The "text" kind stores its prose under the "text" attribute.
type Persona struct {
	Kind       PersonaKind         `json:"kind" yaml:"kind"`
	Attributes map[string][]string `json:"attributes" yaml:"attributes"`
}

// Character represents an AI character as provided by the external
// document store.
type Character struct {
	ID         string    `json:"id" yaml:"id"`
	UserID     string    `json:"user_id" yaml:"user_id"`
	Name       string    `json:"name" yaml:"name"`
	Persona    Persona   `json:"persona" yaml:"persona"`
	Scenario   string    `json:"scenario" yaml:"scenario"`
	SampleChat string    `json:"sample_chat" yaml:"sample_chat"`
	Greeting   string    `json:"greeting" yaml:"greeting"`
	CreatedAt  time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}
