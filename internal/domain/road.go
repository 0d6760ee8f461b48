package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// MapFeature is one entry of a COtrip map layer response. The map API returns
// a discriminated union by GraphQL __typename: Camera features carry Views,
// everything else carries zero or more sub-features with free-form property
// bags.
type MapFeature struct {
	Tooltip  string       `json:"tooltip"`
	URI      string       `json:"uri"`
	TypeName string       `json:"__typename"`
	Features []SubFeature `json:"features"`
	Views    []CameraView `json:"views"`
}

// SubFeature is a concrete road event nested under a map feature.
type SubFeature struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
}

// CameraView is a single still or video stream of a camera feature.
type CameraView struct {
	Category string `json:"category"`
	URL      string `json:"url"`
}

// RoadItem is a flattened, uniform road event row.
type RoadItem struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Route     string `json:"route,omitempty"`
	Direction string `json:"direction,omitempty"`
	Status    string `json:"status,omitempty"`
	Impact    string `json:"impact,omitempty"`
	Updated   string `json:"updated,omitempty"`
	Link      string `json:"link,omitempty"`
}

// CameraImage is a camera with a usable still image.
type CameraImage struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

const cotripBaseURL = "https://maps.cotrip.org"

// clusterLabel matches the "Show 12 cameras" style placeholders the map API
// emits for zoomed-out cluster markers. They carry no usable detail.
var clusterLabel = regexp.MustCompile(`(?i)^show\s+\d+\s`)

// Property-name synonyms per output field, in priority order. The map layers
// disagree on naming; the first present, non-empty synonym wins.
var (
	routeKeys     = []string{"route", "roadway", "routeName"}
	directionKeys = []string{"direction", "dir"}
	statusKeys    = []string{"status", "eventStatus"}
	impactKeys    = []string{"impact", "advisory", "severity"}
	updatedKeys   = []string{"lastUpdated", "updateTime"}
	nameKeys      = []string{"name", "title"}
)

// FlattenMapFeatures normalizes a layer's feature graph into flat road items.
// A parent with sub-features yields one item per sub-feature, inheriting the
// parent tooltip as the fallback name; a leaf feature yields exactly one item
// from its own label and link. Cluster placeholders are dropped. Output order
// follows input order.
func FlattenMapFeatures(features []MapFeature, kindLabel string) []RoadItem {
	var out []RoadItem
	for i, f := range features {
		if clusterLabel.MatchString(f.Tooltip) {
			continue
		}

		link := ""
		if f.URI != "" {
			link = cotripBaseURL + f.URI
		}

		if len(f.Features) == 0 {
			id := f.URI
			if id == "" {
				id = fmt.Sprintf("%s-%d", kindLabel, i)
			}
			name := f.Tooltip
			if name == "" {
				name = "Road item"
			}
			out = append(out, RoadItem{ID: id, Kind: kindLabel, Name: name, Link: link})
			continue
		}

		for j, sub := range f.Features {
			id := sub.ID
			if id == "" {
				id = fmt.Sprintf("%s-%d-%d", kindLabel, i, j)
			}
			name := f.Tooltip
			if name == "" {
				name = firstProp(sub.Properties, nameKeys)
			}
			if name == "" {
				name = "Road item"
			}
			out = append(out, RoadItem{
				ID:        id,
				Kind:      kindLabel,
				Name:      name,
				Route:     firstProp(sub.Properties, routeKeys),
				Direction: firstProp(sub.Properties, directionKeys),
				Status:    firstProp(sub.Properties, statusKeys),
				Impact:    firstProp(sub.Properties, impactKeys),
				Updated:   firstProp(sub.Properties, updatedKeys),
				Link:      link,
			})
		}
	}
	return out
}

// CameraImages extracts camera stills from a normalCameras layer response.
// Only non-video views qualify; cameras without a usable still are dropped,
// as are cluster placeholders.
func CameraImages(features []MapFeature) []CameraImage {
	var out []CameraImage
	for _, f := range features {
		if clusterLabel.MatchString(f.Tooltip) {
			continue
		}
		url := ""
		for _, v := range f.Views {
			if v.URL != "" && v.Category != "video" {
				url = v.URL
				break
			}
		}
		if url == "" {
			continue
		}
		out = append(out, CameraImage{Name: f.Tooltip, ImageURL: url})
	}
	return out
}

// firstProp returns the first present, non-empty property among the given
// synonyms, coerced to a string.
func firstProp(props map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := props[k]
		if !ok {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}
