package domain

import "strings"

// FilterRoadItems narrows an already-fetched road item list by corridor key,
// kind label, and free-text query. Empty arguments match everything.
func FilterRoadItems(items []RoadItem, corridorKey, kind, query string) []RoadItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]RoadItem, 0, len(items))
	for _, it := range items {
		if !MatchCorridor(corridorKey, it.Name+" "+it.Route) {
			continue
		}
		if kind != "" && kind != "ALL" && it.Kind != kind {
			continue
		}
		if q != "" {
			haystack := strings.ToLower(strings.Join([]string{it.Name, it.Route, it.Direction, it.Status, it.Impact}, " "))
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// FilterCameras narrows an already-fetched camera list by corridor key and
// free-text query over the camera name.
func FilterCameras(cams []CameraImage, corridorKey, query string) []CameraImage {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]CameraImage, 0, len(cams))
	for _, cam := range cams {
		if !MatchCorridor(corridorKey, cam.Name) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(cam.Name), q) {
			continue
		}
		out = append(out, cam)
	}
	return out
}
