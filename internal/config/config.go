// Package config loads the session configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds session defaults. It is threaded explicitly through
// engine construction - there is no ambient global configuration.
type Config struct {
	// LogDestination is the sink destination applied at startup:
	// "stdout", "none", or a file path.
	LogDestination string `toml:"log_destination"`

	// JournalPath enables the SQLite hit journal when non-empty.
	JournalPath string `toml:"journal_path"`

	// ImportPrefix is the location-declaration prefix recognized by
	// shared-template imports.
	ImportPrefix string `toml:"import_prefix"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogDestination: "stdout",
		ImportPrefix:   "break ",
	}
}

// Load reads a TOML configuration file. Fields absent from the file keep
// their defaults. Unknown keys are rejected to catch typos early.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file %q does not exist", path)
		}
		return cfg, fmt.Errorf("cannot parse config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown key %q in config file %q", undecoded[0].String(), path)
	}
	return cfg, nil
}
