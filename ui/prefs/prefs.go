// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const prefsFile = "preferences.json"

// Prefs stores persisted user preferences.
type Prefs struct {
	mu   sync.Mutex
	path string

	LastDirectory string `json:"last_directory,omitempty"`
	LastImage     string `json:"last_image,omitempty"`
	LastModel     string `json:"last_model,omitempty"`
}

// Load reads preferences from ~/.config/textlens/preferences.json.
// Returns empty defaults if the file doesn't exist.
func Load() *Prefs {
	p := &Prefs{}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	p.path = filepath.Join(configDir, "textlens", prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, p)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.Lock()
	data, err := json.MarshalIndent(p, "", "  ")
	p.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// RememberFile records the file's directory (and the file itself) as the
// most recently used.
func (p *Prefs) RememberFile(path string) {
	p.mu.Lock()
	p.LastDirectory = filepath.Dir(path)
	p.LastImage = path
	p.mu.Unlock()
}
