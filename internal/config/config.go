// Package config loads the optional .debctl.toml configuration supplying
// parser defaults and signing key settings for the CLI.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds CLI defaults. Flags take precedence over config values.
type Config struct {
	// Parser defaults
	AllowPGP        bool `toml:"allow_pgp"`
	AllowDuplicates bool `toml:"allow_duplicates"`

	// Signing
	SignKey        string `toml:"sign_key"`
	SignPassphrase string `toml:"sign_passphrase"`
}

// Load reads a TOML config file. A missing file is not an error and yields
// the zero config.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
