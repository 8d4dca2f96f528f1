// Package catalogclient is the external fetch layer: it pulls the raw
// product list from the upstream catalog API and hands it to the core
// as a wholesale replacement.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/pluscart/storefront/internal/core/port"
	"github.com/pluscart/storefront/pkg/retry"
)

const (
	fetchTimeout  = 30 * time.Second
	fetchAttempts = 5
)

type CatalogClient struct {
	httpClient *http.Client
	url        string
	interval   time.Duration
	replacer   port.CatalogReplacer
}

// New builds a client that fetches the full catalog from
// {baseURL}/products?limit=0 and refreshes it every interval.
func New(
	baseURL string, interval time.Duration, replacer port.CatalogReplacer,
) CatalogClient {
	return CatalogClient{
		httpClient: &http.Client{Timeout: fetchTimeout},
		url:        strings.TrimRight(baseURL, "/") + "/products?limit=0",
		interval:   interval,
		replacer:   replacer,
	}
}

// Run fetches the catalog once at start and then periodically until the
// context is done. Fetch failures are logged and retried on the next
// tick; the previous catalog stays in place.
func (c CatalogClient) Run(ctx context.Context) {
	const op = "CatalogClient.Run"
	log := slog.With("op", op)

	if err := c.fetch(ctx); err != nil {
		log.Error("initial catalog fetch failed", "err", err)
	}

	if c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.fetch(ctx); err != nil {
				log.Error("catalog refresh failed", "err", err)
			}
		}
	}
}

func (c CatalogClient) fetch(ctx context.Context) error {
	const op = "CatalogClient.fetch"

	retryConfig := retry.RetryConfig{MaxAttempts: fetchAttempts}
	ps, err := retry.DoWithResult(ctx, retryConfig,
		func() ([]domain.Product, error) {
			return c.fetchOnce(ctx)
		})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.replacer.ReplaceCatalog(ctx, ps); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c CatalogClient) fetchOnce(
	ctx context.Context,
) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", res.Status)
	}

	return DecodeCatalog(res.Body)
}

// DecodeCatalog parses a catalog document: either the upstream envelope
// {"products": [...]} or a bare product array. A missing or empty
// products field is a valid empty catalog.
func DecodeCatalog(r io.Reader) ([]domain.Product, error) {
	const op = "catalogclient.DecodeCatalog"

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var wire []product
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("[")) {
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		var pl payload
		if err := json.Unmarshal(data, &pl); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		wire = pl.Products
	}

	ps := make([]domain.Product, 0, len(wire))
	for _, p := range wire {
		ps = append(ps, p.toDomain())
	}
	return ps, nil
}
