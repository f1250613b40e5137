// Package fetcher retrieves the raw listings payload from the remote
// endpoint and shapes it into a normalized table.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"car-dashboard/models"
	"car-dashboard/services"
	"car-dashboard/utils"
)

// Fetcher performs the single GET against the scraping endpoint and runs
// the result through tabularization and normalization. It never retries.
type Fetcher struct {
	url    string
	client *http.Client
	norm   *services.Normalizer
	logger *utils.Logger
}

// New creates a Fetcher with a bounded request timeout.
func New(url string, timeout time.Duration, logger *utils.Logger) *Fetcher {
	return &Fetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
		norm:   services.NewNormalizer(logger),
		logger: logger,
	}
}

// Load fetches, tabularizes and normalizes the remote dataset. Every
// failure is classified: transport and HTTP status problems yield a
// *models.FetchError, anything that goes wrong while interpreting the
// body yields a *models.ProcessingError. The table is empty whenever
// the returned error is non-nil; nothing escapes unclassified.
func (f *Fetcher) Load(ctx context.Context) (table models.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			table = models.Table{}
			err = &models.ProcessingError{Err: fmt.Errorf("unexpected failure: %v", r)}
			f.logger.Error("[fetcher] %v", err)
		}
	}()

	body, err := f.get(ctx)
	if err != nil {
		f.logger.Error("[fetcher] fetch failed: %v", err)
		return models.Table{}, &models.FetchError{Err: err}
	}

	raw, err := Tabularize(body)
	if err != nil {
		f.logger.Error("[fetcher] %v", err)
		return models.Table{}, err
	}

	f.logger.Debug("[fetcher] tabularized %d rows from %d bytes", raw.Len(), len(body))
	return f.norm.Normalize(raw), nil
}

func (f *Fetcher) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(body, 200))
	}
	return body, nil
}

func snippet(b []byte, max int) string {
	s := string(b)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
