package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Downloader fetches package archives over HTTP. Retries live here, at
// the network layer; parsing upstream is deterministic and never retried.
type Downloader struct {
	client *retryablehttp.Client
	log    zerolog.Logger
}

// NewDownloader creates a downloader from the config's network settings.
func NewDownloader(cfg Config, logger zerolog.Logger) *Downloader {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	client.Logger = nil

	return &Downloader{client: client, log: logger}
}

// Download streams the URL's body to dest, creating parent directories.
func (d *Downloader) Download(ctx context.Context, url, dest string) error {
	d.log.Info().Str("url", url).Str("dest", dest).Msg("downloading")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}

	d.log.Debug().Str("url", url).Int64("bytes", n).Msg("download complete")
	return nil
}
