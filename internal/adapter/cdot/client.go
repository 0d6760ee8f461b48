// Package cdot holds the placeholder client for the CDOT developer-portal
// closures feed. The feed requires an API key and its exact path is still
// unconfirmed; until then the client reports the feed as unconfigured and
// passes any payload through untouched.
package cdot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/joeruch23/colorado-weather-network/internal/config"
	"github.com/joeruch23/colorado-weather-network/internal/observability"
)

// ErrNoAPIKey indicates the CDOT feed is not configured.
var ErrNoAPIKey = errors.New("CDOT_API_KEY not configured")

const (
	defaultBaseURL = "https://data.cdot.gov"
	source         = "cdot"
)

// Client fetches the CDOT closures feed.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a CDOT closures client.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:     cfg.CDOTAPIKey,
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		baseURL:    defaultBaseURL,
		logger:     logger.With("component", "cdot-client"),
		metrics:    metrics,
	}
}

// Closures returns the raw closures payload, or ErrNoAPIKey when the feed is
// unconfigured.
//
// TODO: replace the placeholder path once CDOT developer-portal access is
// approved and the real closures endpoint is documented.
func (c *Client) Closures(ctx context.Context) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	u := fmt.Sprintf("%s/api/closures?key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("closures request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("CDOT API error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !json.Valid(body) {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return nil, errors.New("CDOT API returned invalid JSON")
	}

	c.metrics.UpstreamRequests.WithLabelValues(source, "success").Inc()
	return body, nil
}
