package openmeteo

import (
	"fmt"
	"time"

	"github.com/joeruch23/colorado-weather-network/internal/domain"
)

// Open-Meteo API response types. Hourly and daily blocks are parallel arrays
// keyed by index.

type forecastResponse struct {
	UTCOffsetSeconds int `json:"utc_offset_seconds"`

	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		WeatherCode   int     `json:"weathercode"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		Precipitation float64 `json:"precipitation"`
		Humidity      float64 `json:"relative_humidity_2m"`
	} `json:"current"`

	Hourly struct {
		Time        []string  `json:"time"`
		Temperature []float64 `json:"temperature_2m"`
		Pop         []float64 `json:"precipitation_probability"`
		WeatherCode []int     `json:"weathercode"`
		WindSpeed   []float64 `json:"wind_speed_10m"`
	} `json:"hourly"`

	Daily struct {
		Time        []string  `json:"time"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
		PrecipSum   []float64 `json:"precipitation_sum"`
		WeatherCode []int     `json:"weathercode"`
	} `json:"daily"`
}

// hourlyTimeLayout is Open-Meteo's offsetless local-time format; the offset
// arrives separately as utc_offset_seconds.
const hourlyTimeLayout = "2006-01-02T15:04"

// toDomain reshapes the parallel arrays into typed rows. A timestamp that
// fails to parse rejects the whole payload; partial series are worse than an
// empty fallback.
func (r forecastResponse) toDomain() (domain.Forecast, error) {
	loc := time.FixedZone("", r.UTCOffsetSeconds)

	hourly := make([]domain.ForecastPoint, len(r.Hourly.Time))
	for i, ts := range r.Hourly.Time {
		parsed, err := time.ParseInLocation(hourlyTimeLayout, ts, loc)
		if err != nil {
			return domain.Forecast{}, fmt.Errorf("parse hourly time %q: %w", ts, err)
		}
		hourly[i] = domain.ForecastPoint{
			Time:              parsed,
			Temperature:       at(r.Hourly.Temperature, i),
			PrecipProbability: at(r.Hourly.Pop, i),
			WeatherCode:       atInt(r.Hourly.WeatherCode, i),
			WindSpeed:         at(r.Hourly.WindSpeed, i),
		}
	}

	daily := make([]domain.DailySummary, len(r.Daily.Time))
	for i, day := range r.Daily.Time {
		daily[i] = domain.DailySummary{
			Day:         day,
			TempMax:     at(r.Daily.TempMax, i),
			TempMin:     at(r.Daily.TempMin, i),
			PrecipSum:   at(r.Daily.PrecipSum, i),
			WeatherCode: atInt(r.Daily.WeatherCode, i),
		}
	}

	return domain.Forecast{
		Current: domain.CurrentConditions{
			Temperature:   r.Current.Temperature,
			WeatherCode:   r.Current.WeatherCode,
			WindSpeed:     r.Current.WindSpeed,
			Precipitation: r.Current.Precipitation,
			Humidity:      r.Current.Humidity,
		},
		Hourly: hourly,
		Daily:  daily,
	}, nil
}

type snowfallResponse struct {
	Hourly struct {
		Time     []string   `json:"time"`
		Snowfall []*float64 `json:"snowfall"` // null entries count as zero
	} `json:"hourly"`
}

type dailySnowResponse struct {
	Daily struct {
		Time        []string  `json:"time"`
		SnowfallSum []float64 `json:"snowfall_sum"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

func atInt(vals []int, i int) int {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}
