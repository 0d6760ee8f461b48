// Package openmeteo fetches forecasts, snowfall series, and geocoding
// results from the Open-Meteo APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/joeruch23/colorado-weather-network/internal/cache"
	"github.com/joeruch23/colorado-weather-network/internal/config"
	"github.com/joeruch23/colorado-weather-network/internal/domain"
	"github.com/joeruch23/colorado-weather-network/internal/observability"
)

const (
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"

	forecastTTL = 600 * time.Second
	snowTTL     = 1800 * time.Second
	geocodeTTL  = 1800 * time.Second

	source = "openmeteo"
)

// Variable lists requested from the forecast endpoint.
const (
	currentVars  = "temperature_2m,weathercode,wind_speed_10m,precipitation,relative_humidity_2m"
	hourlyVars   = "temperature_2m,precipitation_probability,weathercode,wind_speed_10m"
	dailyVars    = "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode"
	snowDayVars  = "snowfall_sum,temperature_2m_max,temperature_2m_min"
	snowHourVars = "snowfall"
)

// Client talks to the Open-Meteo forecast and geocoding APIs.
type Client struct {
	httpClient  *http.Client
	forecastURL string
	geocodeURL  string
	logger      *slog.Logger
	metrics     *observability.Metrics

	forecastCache *cache.TTL[domain.Forecast]
	snowCache     *cache.TTL[[]float64]
	dailySnow     *cache.TTL[[]domain.DailySnow]
	geocodeCache  *cache.TTL[domain.Place]
}

// NewClient creates an Open-Meteo client.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.UpstreamTimeout},
		forecastURL:   defaultForecastURL,
		geocodeURL:    defaultGeocodeURL,
		logger:        logger.With("component", "openmeteo-client"),
		metrics:       metrics,
		forecastCache: cache.New[domain.Forecast](forecastTTL, cfg.CacheSize, nil),
		snowCache:     cache.New[[]float64](snowTTL, cfg.CacheSize, nil),
		dailySnow:     cache.New[[]domain.DailySnow](snowTTL, cfg.CacheSize, nil),
		geocodeCache:  cache.New[domain.Place](geocodeTTL, cfg.CacheSize, nil),
	}
}

// Forecast fetches current, hourly, and daily blocks for the given
// coordinates. Hourly timestamps are parsed in the location's own UTC offset
// so now-anchored windows compare real instants.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (domain.Forecast, error) {
	if err := validateCoords(lat, lon); err != nil {
		return domain.Forecast{}, err
	}

	key := coordKey("fc", lat, lon)
	if fc, ok := c.forecastCache.Get(key); ok {
		c.metrics.CacheLookups.WithLabelValues(source, "hit").Inc()
		return fc, nil
	}
	c.metrics.CacheLookups.WithLabelValues(source, "miss").Inc()

	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("timezone", "auto")
	params.Set("current", currentVars)
	params.Set("hourly", hourlyVars)
	params.Set("daily", dailyVars)

	var payload forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &payload); err != nil {
		return domain.Forecast{}, err
	}

	fc, err := payload.toDomain()
	if err != nil {
		return domain.Forecast{}, err
	}

	c.forecastCache.Put(key, fc)
	return fc, nil
}

// HourlySnowfall fetches the hourly snowfall series (centimeters) for the
// given coordinates.
func (c *Client) HourlySnowfall(ctx context.Context, lat, lon float64) ([]float64, error) {
	if err := validateCoords(lat, lon); err != nil {
		return nil, err
	}

	key := coordKey("snow", lat, lon)
	if vals, ok := c.snowCache.Get(key); ok {
		c.metrics.CacheLookups.WithLabelValues(source, "hit").Inc()
		return vals, nil
	}
	c.metrics.CacheLookups.WithLabelValues(source, "miss").Inc()

	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("timezone", "auto")
	params.Set("hourly", snowHourVars)

	var payload snowfallResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	vals := make([]float64, len(payload.Hourly.Snowfall))
	for i, v := range payload.Hourly.Snowfall {
		if v != nil {
			vals[i] = *v
		}
	}

	c.snowCache.Put(key, vals)
	return vals, nil
}

// DailySnow fetches the daily snowfall summary series used by chat snow
// replies.
func (c *Client) DailySnow(ctx context.Context, lat, lon float64) ([]domain.DailySnow, error) {
	if err := validateCoords(lat, lon); err != nil {
		return nil, err
	}

	key := coordKey("dsnow", lat, lon)
	if days, ok := c.dailySnow.Get(key); ok {
		c.metrics.CacheLookups.WithLabelValues(source, "hit").Inc()
		return days, nil
	}
	c.metrics.CacheLookups.WithLabelValues(source, "miss").Inc()

	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("timezone", "auto")
	params.Set("daily", snowDayVars)

	var payload dailySnowResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	days := make([]domain.DailySnow, len(payload.Daily.Time))
	for i, day := range payload.Daily.Time {
		days[i] = domain.DailySnow{
			Day:         day,
			SnowfallSum: at(payload.Daily.SnowfallSum, i),
			TempMax:     at(payload.Daily.TempMax, i),
			TempMin:     at(payload.Daily.TempMin, i),
		}
	}

	c.dailySnow.Put(key, days)
	return days, nil
}

// Geocode resolves a place name to coordinates, returning the first match.
// A name with no results yields a zero Place and no error.
func (c *Client) Geocode(ctx context.Context, name string) (domain.Place, error) {
	if place, ok := c.geocodeCache.Get(name); ok {
		c.metrics.CacheLookups.WithLabelValues(source, "hit").Inc()
		return place, nil
	}
	c.metrics.CacheLookups.WithLabelValues(source, "miss").Inc()

	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var payload geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL+"?"+params.Encode(), &payload); err != nil {
		return domain.Place{}, err
	}

	if len(payload.Results) == 0 {
		return domain.Place{}, nil
	}

	first := payload.Results[0]
	label := first.Name
	if first.Admin1 != "" {
		label = first.Name + ", " + first.Admin1
	}
	place := domain.Place{Lat: first.Latitude, Lon: first.Longitude, Name: label}

	c.geocodeCache.Put(name, place)
	return place, nil
}

func (c *Client) getJSON(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return fmt.Errorf("open-meteo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(source, "error").Inc()
		return fmt.Errorf("decode response: %w", err)
	}
	c.metrics.UpstreamRequests.WithLabelValues(source, "success").Inc()
	return nil
}

func validateCoords(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fmt.Errorf("coordinates must be finite: lat=%v lon=%v", lat, lon)
	}
	return nil
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func coordKey(prefix string, lat, lon float64) string {
	return fmt.Sprintf("%s:%.4f,%.4f", prefix, lat, lon)
}

func at(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}
