package fetch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/zonfetch/zonfetch/zon"
)

// Fetcher resolves the dependencies of ZON manifests into the
// content-addressed cache. Its only coupling to the parser is the Value
// shape of the manifest's "dependencies" struct.
type Fetcher struct {
	cfg   Config
	cache *Cache
	dl    *Downloader
	log   zerolog.Logger
}

// NewFetcher creates a fetcher with its cache and HTTP client.
func NewFetcher(cfg Config, logger zerolog.Logger) (*Fetcher, error) {
	if cfg.ManifestName == "" {
		cfg.ManifestName = ManifestName
	}
	cache, err := NewCache(cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	return &Fetcher{
		cfg:   cfg,
		cache: cache,
		dl:    NewDownloader(cfg, logger),
		log:   logger,
	}, nil
}

// ProcessPath processes one manifest file, or every manifest found under
// a directory. Per-manifest failures in directory mode are logged and
// skipped; the remaining manifests are still processed. The result maps
// dependency names to their installed cache paths.
func (f *Fetcher) ProcessPath(ctx context.Context, path string, recursive bool) (map[string]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	result := make(map[string]string)
	visited := make(map[string]bool)

	if info.IsDir() {
		f.log.Info().Str("dir", path).Msg("processing directory")
		manifests, err := FindManifests(path, f.cfg.ManifestName)
		if err != nil {
			return nil, err
		}
		if len(manifests) == 0 {
			f.log.Warn().Str("dir", path).Str("manifest", f.cfg.ManifestName).Msg("no manifest files found")
			return result, nil
		}
		for _, m := range manifests {
			if err := f.processManifest(ctx, m, recursive, result, visited); err != nil {
				f.log.Error().Err(err).Str("manifest", m).Msg("skipping manifest")
			}
		}
		return result, nil
	}

	if err := f.processManifest(ctx, path, recursive, result, visited); err != nil {
		return nil, err
	}
	return result, nil
}

// processManifest parses one manifest and resolves each entry of its
// dependencies struct.
func (f *Fetcher) processManifest(ctx context.Context, path string, recursive bool, result map[string]string, visited map[string]bool) error {
	f.log.Info().Str("manifest", path).Msg("processing dependencies")

	doc, err := parseManifest(path)
	if err != nil {
		return err
	}

	deps := doc.Get("dependencies")
	if deps == nil || deps.Kind() != zon.KindStruct {
		f.log.Warn().Str("manifest", path).Msg("no dependencies found")
		return nil
	}

	fields, _ := deps.Fields()
	for _, dep := range fields {
		installed, err := f.processDependency(ctx, dep.Key, dep.Value)
		if err != nil {
			f.log.Error().Err(err).Str("name", dep.Key).Msg("dependency failed")
			continue
		}
		if installed == "" {
			continue
		}
		result[dep.Key] = installed

		if recursive && !visited[installed] {
			visited[installed] = true
			f.processNested(ctx, installed, result, visited)
		}
	}

	return nil
}

// processNested resolves dependencies declared by manifests inside a
// freshly cached tree.
func (f *Fetcher) processNested(ctx context.Context, depPath string, result map[string]string, visited map[string]bool) {
	manifests, err := FindManifests(depPath, f.cfg.ManifestName)
	if err != nil {
		f.log.Error().Err(err).Str("dir", depPath).Msg("nested manifest scan failed")
		return
	}
	if len(manifests) == 0 {
		f.log.Debug().Str("dir", depPath).Msg("no nested manifests")
		return
	}

	for _, m := range manifests {
		f.log.Info().Str("manifest", m).Msg("processing nested manifest")
		if err := f.processManifest(ctx, m, true, result, visited); err != nil {
			f.log.Error().Err(err).Str("manifest", m).Msg("skipping nested manifest")
		}
	}
}

// processDependency installs one dependency entry into the cache. An
// entry without url or hash is skipped with a warning; a hash already in
// the cache short-circuits without touching the network. Returns the
// installed path, or "" when skipped.
func (f *Fetcher) processDependency(ctx context.Context, name string, info *zon.Value) (string, error) {
	url, _ := info.Get("url").AsStr()
	hash, _ := info.Get("hash").AsStr()

	if url == "" || hash == "" {
		f.log.Warn().Str("name", name).Msg("dependency missing url or hash, skipping")
		return "", nil
	}

	if f.cache.Has(hash) {
		f.log.Info().Str("name", name).Str("hash", hash).Msg("already cached")
		return f.cache.Path(hash), nil
	}

	staging, err := f.cache.TempDir()
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(staging)

	tarball := filepath.Join(staging, name+".tar.gz")
	if err := f.dl.Download(ctx, url, tarball); err != nil {
		return "", err
	}

	extracted, err := ExtractArchive(tarball, filepath.Join(staging, "extract"))
	if err != nil {
		return "", err
	}

	installed, err := f.cache.Install(extracted, hash)
	if err != nil {
		return "", err
	}

	f.log.Info().Str("name", name).Str("hash", hash).Str("path", installed).Msg("dependency cached")
	return installed, nil
}

// FindManifests returns every file named manifestName under root.
func FindManifests(root, manifestName string) ([]string, error) {
	var manifests []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == manifestName {
			manifests = append(manifests, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return manifests, nil
}

// parseManifest loads and parses a manifest file. Manifest containers
// default to struct semantics so an empty dependencies block reads as an
// empty struct.
func parseManifest(path string) (*zon.Value, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	doc, err := zon.Parse(string(content), zon.ParseOptions{EmptyBraceAsStruct: true})
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return doc, nil
}
