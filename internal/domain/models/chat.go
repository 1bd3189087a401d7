package models

import "time"

// Chat represents a conversation between a user and a character.
// GenPreset and GenSettings together describe which generation parameters
// are in effect; see the preset resolution chain for precedence.
type Chat struct {
	ID          string       `json:"id" yaml:"id"`
	UserID      string       `json:"user_id" yaml:"user_id"`
	CharacterID string       `json:"character_id" yaml:"character_id"`
	Name        string       `json:"name" yaml:"name"`
	Scenario    string       `json:"scenario" yaml:"scenario"`
	GenPreset   PresetRef    `json:"gen_preset" yaml:"gen_preset"`
	GenSettings *GenSettings `json:"gen_settings,omitempty" yaml:"gen_settings,omitempty"`
	CreatedAt   time.Time    `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Participant is a chat member record. Handle is the display name used
// when the member speaks as themselves.
type Participant struct {
	UserID string `json:"user_id" yaml:"user_id"`
	Handle string `json:"handle" yaml:"handle"`
}
