// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Keys    KeysConfig    `toml:"keys"`
	Filter  FilterConfig  `toml:"filter"`
	Overlay OverlayConfig `toml:"overlay"`
}

// KeysConfig maps movement key bindings.
type KeysConfig struct {
	Forward  *string `toml:"forward"`
	Backward *string `toml:"backward"`
	Left     *string `toml:"left"`
	Right    *string `toml:"right"`
}

// FilterConfig maps shot filter thresholds in milliseconds.
type FilterConfig struct {
	MaxShotDelay *float64 `toml:"max-shot-delay"`
	MaxCSDelay   *float64 `toml:"max-cs-delay"`
}

// OverlayConfig maps overlay settings.
type OverlayConfig struct {
	Size *int `toml:"size"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
