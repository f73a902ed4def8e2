// Package scrape downloads Wikisource pages and extracts their main content.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"namphong/internal/logger"
)

// ErrMainContentNotFound is returned when the downloaded page has no
// mw-parser-output content division.
var ErrMainContentNotFound = errors.New("main content not found in HTML")

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Download fetches url and writes the body to destPath, creating parent
// directories as needed. The file acts as a cache: when destPath already
// exists nothing is fetched. A non-2xx response is an error; there is no
// retry.
func Download(ctx context.Context, url, destPath string) error {
	log := logger.WithComponent("scrape")

	if _, err := os.Stat(destPath); err == nil {
		log.Info().Str("file", destPath).Msg("HTML file already exists, skipping download")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", url, err)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", destPath, err)
	}
	if err := os.WriteFile(destPath, body, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}

	log.Info().
		Str("url", url).
		Str("file", destPath).
		Int("bytes", len(body)).
		Msg("HTML downloaded and saved")
	return nil
}
