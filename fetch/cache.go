package fetch

import (
	"fmt"
	"os"
	"path/filepath"
)

// Cache is a content-addressed package store: one directory per content
// hash. A directory that exists is complete; installs are staged next to
// it and moved into place with a rename.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir, creating the directory.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the directory a hash resolves to, whether or not it exists.
func (c *Cache) Path(hash string) string {
	return filepath.Join(c.dir, hash)
}

// Has reports whether a hash is already cached.
func (c *Cache) Has(hash string) bool {
	info, err := os.Stat(c.Path(hash))
	return err == nil && info.IsDir()
}

// TempDir creates a staging directory on the same filesystem as the
// cache, so Install can rename instead of copying across devices.
func (c *Cache) TempDir() (string, error) {
	return os.MkdirTemp(c.dir, ".staging-")
}

// Install moves an extracted tree into place under its hash. Installing
// an already-cached hash is a no-op.
func (c *Cache) Install(src, hash string) (string, error) {
	target := c.Path(hash)
	if c.Has(hash) {
		return target, nil
	}
	if err := os.Rename(src, target); err != nil {
		return "", fmt.Errorf("install %s: %w", hash, err)
	}
	return target, nil
}
