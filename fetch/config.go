package fetch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the fixed manifest filename discovered in package trees.
const ManifestName = "build.zig.zon"

// Config holds the fetcher configuration.
type Config struct {
	// CacheDir is the content-addressed package cache root.
	CacheDir string `toml:"cache_dir"`

	// ManifestName overrides the manifest filename (mostly for tests).
	ManifestName string `toml:"manifest_name"`

	// TimeoutSeconds bounds a single download request.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// RetryMax is the number of download retries after the first attempt.
	RetryMax int `toml:"retry_max"`
}

// DefaultConfig returns the defaults: the conventional Zig package cache
// under the user's home directory and modest network settings.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		CacheDir:       filepath.Join(home, ".cache", "zig", "p"),
		ManifestName:   ManifestName,
		TimeoutSeconds: 60,
		RetryMax:       3,
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.ManifestName == "" {
		cfg.ManifestName = ManifestName
	}
	return cfg, nil
}
