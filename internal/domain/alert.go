package domain

import "regexp"

// Alert is one active NWS CAP alert, normalized from the GeoJSON feature.
type Alert struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Headline  string `json:"headline"`
	AreaDesc  string `json:"area_desc"`
	DetailURL string `json:"detail_url,omitempty"`
}

// travelTerms matches alert events that affect road travel.
var travelTerms = regexp.MustCompile(`(?i)(Winter|Blizzard|Snow|Ice|High Wind|Dust|Avalanche)`)

// FilterTravelAlerts keeps only alerts whose event name suggests a travel
// impact (winter storms, high wind, avalanches, and the like).
func FilterTravelAlerts(alerts []Alert) []Alert {
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if travelTerms.MatchString(a.Event) {
			out = append(out, a)
		}
	}
	return out
}
