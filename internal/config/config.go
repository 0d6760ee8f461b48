package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// UpstreamTimeout bounds every outbound API call.
	UpstreamTimeout time.Duration
	// CacheSize caps entries per upstream adapter cache.
	CacheSize int

	// NWSUserAgent identifies this client to api.weather.gov, per their
	// usage policy.
	NWSUserAgent string

	// CDOTAPIKey unlocks the CDOT closures feed. Empty means the feed is
	// reported as unconfigured.
	CDOTAPIKey string

	// OpenAI reply-polishing configuration. Enabled defaults to key-present.
	OpenAIKey     string
	OpenAIModel   string
	OpenAIEnabled bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parsePositiveDuration("UPSTREAM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	openAIKey := os.Getenv("OPENAI_API_KEY")
	openAIEnabled := openAIKey != ""
	if v := os.Getenv("OPENAI_ENABLED"); v != "" {
		openAIEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		UpstreamTimeout: upstreamTimeout,
		CacheSize:       parseCacheSize(),
		NWSUserAgent:    envOrDefault("NWS_USER_AGENT", "ColoradoWeatherNetwork (contact@coloradoweather.network)"),
		CDOTAPIKey:      os.Getenv("CDOT_API_KEY"),
		OpenAIKey:       openAIKey,
		OpenAIModel:     envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIEnabled:   openAIEnabled,
	}

	if cfg.OpenAIEnabled && cfg.OpenAIKey == "" {
		return nil, errors.New("OPENAI_ENABLED is true but OPENAI_API_KEY is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseCacheSize() int {
	if s := os.Getenv("CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
