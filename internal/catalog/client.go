// Package catalog fetches the product catalog from the remote catalog API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	cerrors "github.com/abgdnv/productcompare/internal/errors"
	"github.com/abgdnv/productcompare/internal/product"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config holds the client configuration.
type Config struct {
	// Endpoint is the absolute URL of the product list, e.g. https://fakestoreapi.com/products.
	Endpoint string
	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient is an optional custom http.Client. If nil, a traced default is used.
	HTTPClient *http.Client
}

// StatusError is returned when the catalog answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Is reports StatusError as ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == cerrors.ErrUnexpectedStatus
}

// Client reads the full catalog with one GET request.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("catalog client: endpoint is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
		logger:     logger.With("component", "catalog"),
	}, nil
}

// FetchProducts returns the catalog in the order served by the API.
// Transport, status and decoding failures are all returned as errors.
func (c *Client) FetchProducts(ctx context.Context) ([]product.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Catalog request failed", "endpoint", c.endpoint, "error", err)
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		c.logger.WarnContext(ctx, "Catalog responded with unexpected status", "endpoint", c.endpoint, "status", res.StatusCode)
		return nil, &StatusError{StatusCode: res.StatusCode}
	}

	var products []product.Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	if products == nil {
		products = []product.Product{}
	}
	c.logger.DebugContext(ctx, "Catalog fetched",
		"count", len(products),
		"duration_ms", float64(time.Since(start).Nanoseconds())/1e6)
	return products, nil
}
