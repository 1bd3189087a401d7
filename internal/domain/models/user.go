package models

// User is the chat-owning identity provided by the external store.
// DefaultPresets maps a service id to the preset id that service should
// use when a chat defers to the service default. A nil map means the user
// has never configured per-service defaults.
type User struct {
	ID             string            `json:"id" yaml:"id"`
	Handle         string            `json:"handle" yaml:"handle"`
	DefaultService string            `json:"default_service,omitempty" yaml:"default_service,omitempty"`
	DefaultPresets map[string]string `json:"default_presets,omitempty" yaml:"default_presets,omitempty"`
}
