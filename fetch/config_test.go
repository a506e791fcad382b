package fetch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, ManifestName, cfg.ManifestName)
	require.Equal(t, 60, cfg.TimeoutSeconds)
	require.Equal(t, 3, cfg.RetryMax)
	require.True(t, strings.HasSuffix(cfg.CacheDir, filepath.Join(".cache", "zig", "p")), cfg.CacheDir)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zonfetch.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
cache_dir = "/var/cache/zon"
timeout_seconds = 5
retry_max = 1
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/var/cache/zon", cfg.CacheDir)
	require.Equal(t, 5, cfg.TimeoutSeconds)
	require.Equal(t, 1, cfg.RetryMax)

	// Unset keys keep their defaults.
	require.Equal(t, ManifestName, cfg.ManifestName)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
