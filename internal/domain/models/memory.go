package models

// MemoryEntry is a single lore/memory record attached to a chat.
type MemoryEntry struct {
	Name     string   `json:"name" yaml:"name"`
	Entry    string   `json:"entry" yaml:"entry"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Priority int      `json:"priority" yaml:"priority"`
	Weight   int      `json:"weight" yaml:"weight"`
	Enabled  bool     `json:"enabled" yaml:"enabled"`
}

// MemoryBook is an ordered collection of memory entries. Order is
// significant: entries are surfaced to templates in the order stored.
type MemoryBook struct {
	ID      string        `json:"id" yaml:"id"`
	UserID  string        `json:"user_id" yaml:"user_id"`
	Name    string        `json:"name" yaml:"name"`
	Entries []MemoryEntry `json:"entries" yaml:"entries"`
}
