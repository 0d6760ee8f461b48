package domain

import "time"

// ForecastPoint is one hourly forecast sample.
type ForecastPoint struct {
	Time              time.Time `json:"time"`
	Temperature       float64   `json:"temperature"`
	PrecipProbability float64   `json:"precipitation_probability"`
	WeatherCode       int       `json:"weather_code"`
	WindSpeed         float64   `json:"wind_speed"`
}

// DailySummary is one calendar day of the daily forecast series.
type DailySummary struct {
	Day         string  `json:"day"` // ISO date, e.g. "2024-01-01"
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
	PrecipSum   float64 `json:"precipitation_sum"`
	WeatherCode int     `json:"weather_code"`
}

// CurrentConditions holds the current-weather block of a forecast response.
type CurrentConditions struct {
	Temperature   float64 `json:"temperature"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation float64 `json:"precipitation"`
	Humidity      float64 `json:"humidity"`
}

// hourlyWindowSize caps the forward-looking hourly window.
const hourlyWindowSize = 24

// dailyWindowSize caps the daily window.
const dailyWindowSize = 3

// HourlyWindow returns the forward-looking slice of points starting at the
// first sample whose timestamp is at or after now, capped at 24 entries. A
// series that lies entirely in the past yields an empty window: stale data is
// worse than none, so there is no wrap-around to the start of the series.
// The input is never mutated.
func HourlyWindow(points []ForecastPoint) []ForecastPoint {
	now := clock.Now()
	start := -1
	for i, p := range points {
		if !p.Time.Before(now) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	end := start + hourlyWindowSize
	if end > len(points) {
		end = len(points)
	}
	out := make([]ForecastPoint, end-start)
	copy(out, points[start:end])
	return out
}

// DailyWindow returns the first three entries of the daily series. Daily
// series start today, so no now-anchoring is needed.
func DailyWindow(days []DailySummary) []DailySummary {
	n := dailyWindowSize
	if n > len(days) {
		n = len(days)
	}
	out := make([]DailySummary, n)
	copy(out, days[:n])
	return out
}
