// Package memory provides in-memory driven-port implementations,
// used by service tests in place of the file and SQLite adapters.
package memory

import (
	"sync"

	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps configuration in a map. Save and Load are no-ops;
// nothing outlives the store.
type ConfigStore struct {
	mu      sync.Mutex
	entries map[string]any
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{entries: make(map[string]any)}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.entries[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt retrieves an integer configuration value. Wider numeric types
// narrow to int, matching what the TOML store hands back.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return nil
}

// Save is a no-op; the store has no backing file.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op; the store has no backing file.
func (s *ConfigStore) Load() error { return nil }

// Path identifies the store in messages that expect a file location.
func (s *ConfigStore) Path() string { return ":memory:" }
