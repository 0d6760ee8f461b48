// Package nws fetches active weather alerts from the National Weather
// Service CAP feed.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/joeruch23/colorado-weather-network/internal/cache"
	"github.com/joeruch23/colorado-weather-network/internal/config"
	"github.com/joeruch23/colorado-weather-network/internal/domain"
	"github.com/joeruch23/colorado-weather-network/internal/observability"
)

const (
	defaultBaseURL = "https://api.weather.gov"
	stateCode      = "CO"
	alertsTTL      = 300 * time.Second
	source         = "nws"
)

// Client fetches active CAP alerts for Colorado.
type Client struct {
	userAgent  string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
	cache      *cache.TTL[[]domain.Alert]
}

// NewClient creates an NWS alerts client. All requests carry the configured
// User-Agent, as required by the api.weather.gov usage policy.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		userAgent:  cfg.NWSUserAgent,
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		baseURL:    defaultBaseURL,
		logger:     logger.With("component", "nws-client"),
		metrics:    metrics,
		cache:      cache.New[[]domain.Alert](alertsTTL, cfg.CacheSize, nil),
	}
}

// ActiveAlerts returns the active alerts for Colorado, normalized from the
// CAP GeoJSON features. Results are cached for five minutes.
func (c *Client) ActiveAlerts(ctx context.Context) ([]domain.Alert, error) {
	const key = "alerts:" + stateCode
	if alerts, ok := c.cache.Get(key); ok {
		c.metrics.CacheLookups.WithLabelValues(source, "hit").Inc()
		return alerts, nil
	}
	c.metrics.CacheLookups.WithLabelValues(source, "miss").Inc()

	u := fmt.Sprintf("%s/alerts/active?area=%s", c.baseURL, stateCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("alerts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("NWS API error: status %d: %s", resp.StatusCode, body)
	}

	var payload alertsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("decode alerts response: %w", err)
	}
	c.metrics.UpstreamRequests.WithLabelValues(source, "success").Inc()

	alerts := make([]domain.Alert, 0, len(payload.Features))
	for _, f := range payload.Features {
		detail := f.Properties.AtID
		if detail == "" {
			detail = f.ID
		}
		alerts = append(alerts, domain.Alert{
			ID:        f.ID,
			Event:     f.Properties.Event,
			Headline:  f.Properties.Headline,
			AreaDesc:  f.Properties.AreaDesc,
			DetailURL: detail,
		})
	}

	c.cache.Put(key, alerts)
	return alerts, nil
}

// CAP API response types.

type alertsResponse struct {
	Features []alertFeature `json:"features"`
}

type alertFeature struct {
	ID         string `json:"id"`
	Properties struct {
		AtID     string `json:"@id"`
		Event    string `json:"event"`
		Headline string `json:"headline"`
		AreaDesc string `json:"areaDesc"`
	} `json:"properties"`
}
