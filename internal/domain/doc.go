// Package domain models the Colorado weather and road data served by the site.
//
// # Data Sources
//
// Weather alerts come from the National Weather Service CAP feed
// (https://api.weather.gov/alerts/active?area=CO), which returns GeoJSON-like
// features whose properties carry the event name, headline, and affected area.
// The feature's "@id" property is a canonical detail URL.
//
// Forecasts, geocoding, and snowfall come from Open-Meteo
// (https://open-meteo.com/). Hourly and daily blocks are parallel arrays keyed
// by the same index: hourly.time[i] pairs with hourly.temperature_2m[i] and so
// on. Weather codes use the WMO code set (0 clear, 71-77 snow, 95+ storms).
// Hourly snowfall is reported in centimeters of snow.
//
// Road events and cameras come from the COtrip map API, a GraphQL endpoint
// returning "map features" per layer slug (roadWork, chainLaws,
// winterDriving, ...). A map feature is either a leaf (tooltip plus link), a
// parent carrying sub-features with their own property bags, or a Camera
// carrying a list of views. Property names vary by layer; see
// [FlattenMapFeatures] for the accepted synonyms. The map API also emits
// cluster placeholders ("Show 12 cameras") that represent a zoomed-out marker
// rather than a real event; these are dropped during flattening.
//
// # Windows and Totals
//
// The hourly forecast window is anchored at the caller's "now": it starts at
// the first sample whose timestamp is at or after now and spans up to 24
// samples. The daily window is simply the first three entries, since daily
// series start today. Snowfall totals sum the trailing 24 and 72 entries of
// whatever series Open-Meteo returned; see [SummarizeSnowfall].
//
// All functions here are pure. Network fetching lives in internal/adapter,
// error absorption in internal/service.
package domain
