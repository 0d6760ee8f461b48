// Package service aggregates upstream adapter results into view-ready
// shapes. It is the single error-absorption boundary: adapters return errors,
// and every method here converts a failure into its documented empty value so
// a broken upstream degrades the page instead of failing it. No retries.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/joeruch23/colorado-weather-network/internal/domain"
)

// AlertsFetcher fetches active NWS alerts.
type AlertsFetcher interface {
	ActiveAlerts(ctx context.Context) ([]domain.Alert, error)
}

// WeatherFetcher fetches forecasts, snowfall, and geocoding from Open-Meteo.
type WeatherFetcher interface {
	Forecast(ctx context.Context, lat, lon float64) (domain.Forecast, error)
	HourlySnowfall(ctx context.Context, lat, lon float64) ([]float64, error)
	DailySnow(ctx context.Context, lat, lon float64) ([]domain.DailySnow, error)
	Geocode(ctx context.Context, name string) (domain.Place, error)
}

// MapFetcher fetches COtrip map layers.
type MapFetcher interface {
	LayerFeatures(ctx context.Context, slug string) ([]domain.MapFeature, error)
}

// Service combines adapters into the shapes the handlers and the chat
// responder render.
type Service struct {
	alerts  AlertsFetcher
	weather WeatherFetcher
	maps    MapFetcher
	logger  *slog.Logger
}

// New creates a Service.
func New(alerts AlertsFetcher, weather WeatherFetcher, maps MapFetcher, logger *slog.Logger) *Service {
	return &Service{
		alerts:  alerts,
		weather: weather,
		maps:    maps,
		logger:  logger.With("component", "service"),
	}
}

// Alerts returns active Colorado alerts, or an empty list on failure.
func (s *Service) Alerts(ctx context.Context) []domain.Alert {
	alerts, err := s.alerts.ActiveAlerts(ctx)
	if err != nil {
		s.logger.Warn("alerts fetch failed", "error", err)
		return []domain.Alert{}
	}
	return alerts
}

// TravelAlerts returns active alerts filtered to travel-impacting events.
func (s *Service) TravelAlerts(ctx context.Context) []domain.Alert {
	return domain.FilterTravelAlerts(s.Alerts(ctx))
}

// ForecastSummary holds the view-ready forecast: current conditions, the
// now-anchored 24-hour window, and the 3-day window.
type ForecastSummary struct {
	Current  domain.CurrentConditions `json:"current"`
	Hourly24 []domain.ForecastPoint   `json:"hourly24"`
	Daily3   []domain.DailySummary    `json:"daily3"`
}

// ForecastSummary fetches and windows the forecast for the given
// coordinates. The boolean is false when the fetch failed and the summary is
// the empty fallback.
func (s *Service) ForecastSummary(ctx context.Context, lat, lon float64) (ForecastSummary, bool) {
	fc, ok := s.FullForecast(ctx, lat, lon)
	if !ok {
		return ForecastSummary{}, false
	}
	return ForecastSummary{
		Current:  fc.Current,
		Hourly24: domain.HourlyWindow(fc.Hourly),
		Daily3:   domain.DailyWindow(fc.Daily),
	}, true
}

// FullForecast fetches the complete forecast bundle. The boolean is false on
// failure, with an empty bundle as the fallback.
func (s *Service) FullForecast(ctx context.Context, lat, lon float64) (domain.Forecast, bool) {
	fc, err := s.weather.Forecast(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("forecast fetch failed", "lat", lat, "lon", lon, "error", err)
		return domain.Forecast{}, false
	}
	return fc, true
}

// SnowTotals returns trailing 24h/72h snowfall totals for the coordinates,
// or a zero report on failure.
func (s *Service) SnowTotals(ctx context.Context, lat, lon float64) domain.SnowReport {
	vals, err := s.weather.HourlySnowfall(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("snowfall fetch failed", "lat", lat, "lon", lon, "error", err)
		return domain.SnowReport{Unit: "cm"}
	}
	return domain.SummarizeSnowfall(vals)
}

// DailySnow returns the daily snowfall series, or an empty list on failure.
func (s *Service) DailySnow(ctx context.Context, lat, lon float64) []domain.DailySnow {
	days, err := s.weather.DailySnow(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("daily snow fetch failed", "lat", lat, "lon", lon, "error", err)
		return []domain.DailySnow{}
	}
	return days
}

// roadLayers are the map layers shown on the roads page, queried in this
// order.
var roadLayers = []struct {
	Slug  string
	Label string
}{
	{"restrictions", "Restriction"},
	{"roadReports", "Road Report"},
	{"roadWork", "Road Work"},
	{"winterDriving", "Winter Driving"},
	{"chainLaws", "Chain Law"},
}

// RoadItems fetches all road layers concurrently and flattens them into one
// list, concatenated in layer order. A failed layer contributes nothing; the
// remaining layers still render.
func (s *Service) RoadItems(ctx context.Context) []domain.RoadItem {
	perLayer := make([][]domain.RoadItem, len(roadLayers))

	var wg sync.WaitGroup
	for i, layer := range roadLayers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feats, err := s.maps.LayerFeatures(ctx, layer.Slug)
			if err != nil {
				s.logger.Warn("road layer fetch failed", "layer", layer.Slug, "error", err)
				return
			}
			perLayer[i] = domain.FlattenMapFeatures(feats, layer.Label)
		}()
	}
	wg.Wait()

	items := []domain.RoadItem{}
	for _, layerItems := range perLayer {
		items = append(items, layerItems...)
	}
	return items
}

// Cameras fetches the camera layer and keeps entries with a usable still
// image, or an empty list on failure.
func (s *Service) Cameras(ctx context.Context) []domain.CameraImage {
	feats, err := s.maps.LayerFeatures(ctx, "normalCameras")
	if err != nil {
		s.logger.Warn("camera layer fetch failed", "error", err)
		return []domain.CameraImage{}
	}
	return domain.CameraImages(feats)
}

// ResolvePlace fixes the location for a request. Explicit coordinates win;
// otherwise a city name is geocoded; anything unresolvable falls back to
// Denver. Zero coordinates count as unset.
func (s *Service) ResolvePlace(ctx context.Context, lat, lon float64, city string) domain.Place {
	if lat != 0 && lon != 0 {
		name := city
		if name == "" {
			name = "your location"
		}
		return domain.Place{Lat: lat, Lon: lon, Name: name}
	}

	if city != "" {
		place, err := s.weather.Geocode(ctx, city)
		if err != nil {
			s.logger.Warn("geocode failed", "city", city, "error", err)
		} else if place.Lat != 0 || place.Lon != 0 {
			return place
		}
	}

	return domain.DenverFallback
}
