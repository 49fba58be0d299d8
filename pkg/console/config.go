package console

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds engine-level configuration, loadable from YAML and
// overridable by flags.
type Config struct {
	// --- Game data ---
	Adventure string `yaml:"adventure"` // path to the game database
	Language  string `yaml:"language"`  // optional translation database

	// --- Saves ---
	SavePath string `yaml:"save_path"` // flat save file
	SaveDB   string `yaml:"save_db"`   // bbolt slot store, overrides SavePath
	SaveSlot string `yaml:"save_slot"` // slot name inside SaveDB

	// --- Transcript ---
	TranscriptDB string `yaml:"transcript_db"` // SQLite path, empty disables

	// --- Web front-end ---
	WebListen string `yaml:"web_listen"` // host:port, empty disables

	// --- Session ---
	Seed    int64 `yaml:"seed"`     // 0 = time-seeded
	NoDelay bool  `yaml:"no_delay"` // skip presentation pauses
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		SavePath: "adventure.sav",
		SaveSlot: "default",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML %s: %w", path, err)
	}
	return cfg, nil
}
