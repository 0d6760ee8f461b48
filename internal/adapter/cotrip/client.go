// Package cotrip fetches road events and cameras from the COtrip map API, a
// GraphQL endpoint queried one layer slug at a time.
package cotrip

import (
	"bytes"
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
	defaultBaseURL = "https://maps.cotrip.org/api/graphql"
	layerTTL       = 300 * time.Second
	source         = "cotrip"
)

// Layer slugs this service queries.
const (
	LayerRestrictions  = "restrictions"
	LayerRoadReports   = "roadReports"
	LayerRoadWork      = "roadWork"
	LayerWinterDriving = "winterDriving"
	LayerChainLaws     = "chainLaws"
	LayerCameras       = "normalCameras"
)

const mapFeaturesQuery = `
    query MapFeatures($input: MapFeaturesArgs!, $plowType: String) {
      mapFeaturesQuery(input: $input) {
        mapFeatures {
          tooltip
          uri
          __typename
          features { id geometry properties }
          views {
            category
            url
          }
        }
        error { message type }
      }
    }
  `

// Colorado bounding box used for every layer query.
var coloradoBounds = bounds{North: 41.1, South: 36.9, East: -102.0, West: -109.2}

// Client queries COtrip map layers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
	cache      *cache.TTL[[]domain.MapFeature]
}

// NewClient creates a COtrip map-features client.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		baseURL:    defaultBaseURL,
		logger:     logger.With("component", "cotrip-client"),
		metrics:    metrics,
		cache:      cache.New[[]domain.MapFeature](layerTTL, cfg.CacheSize, nil),
	}
}

// LayerFeatures fetches the raw map features of one layer slug across the
// Colorado bounding box. Results are cached per layer for five minutes.
func (c *Client) LayerFeatures(ctx context.Context, slug string) ([]domain.MapFeature, error) {
	if feats, ok := c.cache.Get(slug); ok {
		c.metrics.CacheLookups.WithLabelValues(source, "hit").Inc()
		return feats, nil
	}
	c.metrics.CacheLookups.WithLabelValues(source, "miss").Inc()

	// The map API expects a one-element batch and answers in kind.
	payload := []graphqlRequest{{
		Query: mapFeaturesQuery,
		Variables: requestVariables{
			Input: mapFeaturesInput{
				bounds:             coloradoBounds,
				Zoom:               12,
				LayerSlugs:         []string{slug},
				NonClusterableUris: []string{"dashboard"},
			},
			PlowType: "plowCameras",
		},
	}}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("map features request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("cotrip API error: status %d: %s", resp.StatusCode, respBody)
	}

	var decoded graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.metrics.UpstreamRequests.WithLabelValues(source, "success").Inc()

	if len(decoded) == 0 {
		return nil, fmt.Errorf("cotrip API returned empty batch for layer %s", slug)
	}

	result := decoded[0].Data.MapFeaturesQuery
	if result.Error != nil && result.Error.Message != "" {
		c.logger.Warn("map features query reported an error",
			"layer", slug,
			"message", result.Error.Message,
			"type", result.Error.Type,
		)
	}

	feats := result.MapFeatures
	c.cache.Put(slug, feats)
	return feats, nil
}

// GraphQL request/response envelopes.

type graphqlRequest struct {
	Query     string           `json:"query"`
	Variables requestVariables `json:"variables"`
}

type requestVariables struct {
	Input    mapFeaturesInput `json:"input"`
	PlowType string           `json:"plowType"`
}

type bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

type mapFeaturesInput struct {
	bounds
	Zoom               int      `json:"zoom"`
	LayerSlugs         []string `json:"layerSlugs"`
	NonClusterableUris []string `json:"nonClusterableUris"`
}

type graphqlResponse []struct {
	Data struct {
		MapFeaturesQuery struct {
			MapFeatures []domain.MapFeature `json:"mapFeatures"`
			Error       *struct {
				Message string `json:"message"`
				Type    string `json:"type"`
			} `json:"error"`
		} `json:"mapFeaturesQuery"`
	} `json:"data"`
}
