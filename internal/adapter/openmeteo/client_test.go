package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeruch23/colorado-weather-network/internal/cache"
	"github.com/joeruch23/colorado-weather-network/internal/domain"
	"github.com/joeruch23/colorado-weather-network/internal/observability"
)

func testClient(forecastURL, geocodeURL string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 5 * time.Second},
		forecastURL:   forecastURL,
		geocodeURL:    geocodeURL,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:       observability.NewMetricsForTesting(),
		forecastCache: cache.New[domain.Forecast](forecastTTL, 100, nil),
		snowCache:     cache.New[[]float64](snowTTL, 100, nil),
		dailySnow:     cache.New[[]domain.DailySnow](snowTTL, 100, nil),
		geocodeCache:  cache.New[domain.Place](geocodeTTL, 100, nil),
	}
}

const forecastPayload = `{
	"utc_offset_seconds": -25200,
	"current": {
		"temperature_2m": 28.4,
		"weathercode": 73,
		"wind_speed_10m": 5.2,
		"precipitation": 0.1,
		"relative_humidity_2m": 81
	},
	"hourly": {
		"time": ["2024-01-01T00:00", "2024-01-01T01:00", "2024-01-01T02:00"],
		"temperature_2m": [28.4, 27.9, 27.1],
		"precipitation_probability": [80, 85, 90],
		"weathercode": [73, 73, 75],
		"wind_speed_10m": [5.2, 6.0, 6.8]
	},
	"daily": {
		"time": ["2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"],
		"temperature_2m_max": [31.0, 25.2, 28.8, 33.1],
		"temperature_2m_min": [18.5, 12.0, 15.3, 19.9],
		"precipitation_sum": [0.4, 1.2, 0.0, 0.0],
		"weathercode": [73, 75, 2, 0]
	}
}`

func TestForecast_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "39.7392", q.Get("latitude"))
		assert.Equal(t, "-104.9903", q.Get("longitude"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.Contains(t, q.Get("current"), "temperature_2m")
		assert.Contains(t, q.Get("hourly"), "precipitation_probability")
		assert.Contains(t, q.Get("daily"), "temperature_2m_max")

		_, _ = w.Write([]byte(forecastPayload))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	fc, err := c.Forecast(context.Background(), 39.7392, -104.9903)
	require.NoError(t, err)

	assert.Equal(t, 28.4, fc.Current.Temperature)
	assert.Equal(t, 73, fc.Current.WeatherCode)
	assert.Equal(t, float64(81), fc.Current.Humidity)

	require.Len(t, fc.Hourly, 3)
	assert.Equal(t, 28.4, fc.Hourly[0].Temperature)
	assert.Equal(t, float64(80), fc.Hourly[0].PrecipProbability)
	// Timestamps carry the response's UTC offset (-7h).
	_, offset := fc.Hourly[0].Time.Zone()
	assert.Equal(t, -25200, offset)
	assert.Equal(t, time.Hour, fc.Hourly[1].Time.Sub(fc.Hourly[0].Time))

	require.Len(t, fc.Daily, 4)
	assert.Equal(t, "2024-01-01", fc.Daily[0].Day)
	assert.Equal(t, 31.0, fc.Daily[0].TempMax)
	assert.Equal(t, 18.5, fc.Daily[0].TempMin)
	assert.Equal(t, 0.4, fc.Daily[0].PrecipSum)
}

func TestForecast_InvalidCoords(t *testing.T) {
	c := testClient("http://unused", "http://unused")

	_, err := c.Forecast(context.Background(), math.NaN(), -105)
	require.Error(t, err)

	_, err = c.Forecast(context.Background(), 39, math.Inf(1))
	require.Error(t, err)
}

func TestForecast_Cached(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(forecastPayload))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Forecast(context.Background(), 39.7392, -104.9903)
	require.NoError(t, err)
	_, err = c.Forecast(context.Background(), 39.7392, -104.9903)
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load())
}

func TestForecast_MalformedTimestampRejectsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hourly": {"time": ["bogus"], "temperature_2m": [1]}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Forecast(context.Background(), 39, -105)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse hourly time")
}

func TestForecast_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"reason": "Latitude must be in range"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Forecast(context.Background(), 39, -105)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestHourlySnowfall_NullsCountAsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "snowfall", r.URL.Query().Get("hourly"))
		_, _ = w.Write([]byte(`{
			"hourly": {
				"time": ["2024-01-01T00:00", "2024-01-01T01:00", "2024-01-01T02:00"],
				"snowfall": [0.5, null, 1.2]
			}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	vals, err := c.HourlySnowfall(context.Background(), 39.6, -106.3)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 0, 1.2}, vals)
}

func TestDailySnow_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, snowDayVars, r.URL.Query().Get("daily"))
		_, _ = w.Write([]byte(`{
			"daily": {
				"time": ["2024-01-01", "2024-01-02", "2024-01-03"],
				"snowfall_sum": [5.0, 2.5, 0.0],
				"temperature_2m_max": [28.0, 25.0, 30.0],
				"temperature_2m_min": [10.0, 8.0, 12.0]
			}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	days, err := c.DailySnow(context.Background(), 39.6, -106.3)
	require.NoError(t, err)

	require.Len(t, days, 3)
	assert.Equal(t, "2024-01-01", days[0].Day)
	assert.Equal(t, 5.0, days[0].SnowfallSum)
	assert.Equal(t, 28.0, days[0].TempMax)
	assert.Equal(t, 10.0, days[0].TempMin)
}

func TestGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Vail", q.Get("name"))
		assert.Equal(t, "1", q.Get("count"))
		_, _ = w.Write([]byte(`{
			"results": [
				{"name": "Vail", "latitude": 39.6403, "longitude": -106.3742, "admin1": "Colorado"}
			]
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	place, err := c.Geocode(context.Background(), "Vail")
	require.NoError(t, err)

	assert.Equal(t, 39.6403, place.Lat)
	assert.Equal(t, -106.3742, place.Lon)
	assert.Equal(t, "Vail, Colorado", place.Name)
}

func TestGeocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	place, err := c.Geocode(context.Background(), "Nowheresville")
	require.NoError(t, err)
	assert.Equal(t, domain.Place{}, place)
}
