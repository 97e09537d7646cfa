// Package config loads settings for the host tools (initsim, bootcheck).
// Precedence, lowest first: defaults, TOML file, MUNIX_* environment.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces environment overrides, e.g. MUNIX_LOG_LEVEL.
const EnvPrefix = "MUNIX"

// Config holds all host tool configuration.
type Config struct {
	Log        LogConfig        `toml:"log"`
	Transcript TranscriptConfig `toml:"transcript"`
	Sim        SimConfig        `toml:"sim"`
}

// LogConfig controls the tools' own logging.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// TranscriptConfig describes captured kernel debug output.
type TranscriptConfig struct {
	// Prefix the kernel console puts in front of debug-channel lines.
	Prefix string `toml:"prefix"`
}

// SimConfig controls initsim's rendering of the debug channel.
type SimConfig struct {
	Prefix string `toml:"prefix"`
	Output string `toml:"output"` // "-" is stdout
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:       "info",
			Development: false,
		},
		Sim: SimConfig{
			Output: "-",
		},
	}
}

// Load builds the configuration. path may be empty to skip the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return nil
}
