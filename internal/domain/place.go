package domain

// Place is a resolved location.
type Place struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// DenverFallback is the fixed default location used when neither coordinates
// nor a resolvable place name is available.
var DenverFallback = Place{Lat: 39.7392, Lon: -104.9903, Name: "Denver, CO (default)"}

// Forecast bundles the three blocks of an Open-Meteo forecast response.
type Forecast struct {
	Current CurrentConditions `json:"current"`
	Hourly  []ForecastPoint   `json:"hourly"`
	Daily   []DailySummary    `json:"daily"`
}
