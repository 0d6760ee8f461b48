package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenMapFeatures_LeafFeature(t *testing.T) {
	features := []MapFeature{
		{Tooltip: "I-70 Eastbound closure", URI: "/event/123"},
	}

	items := FlattenMapFeatures(features, "Road Work")

	require.Len(t, items, 1)
	assert.Equal(t, "/event/123", items[0].ID)
	assert.Equal(t, "Road Work", items[0].Kind)
	assert.Equal(t, "I-70 Eastbound closure", items[0].Name)
	assert.Equal(t, "https://maps.cotrip.org/event/123", items[0].Link)
	assert.Empty(t, items[0].Route)
}

func TestFlattenMapFeatures_SubFeatures(t *testing.T) {
	features := []MapFeature{
		{
			Tooltip: "Chain law in effect",
			URI:     "/event/456",
			Features: []SubFeature{
				{
					ID: "sub-1",
					Properties: map[string]any{
						"roadway":     "I-70",
						"dir":         "EB",
						"eventStatus": "active",
						"severity":    "high",
						"updateTime":  "2024-01-01T12:00:00Z",
					},
				},
				{
					ID: "sub-2",
					Properties: map[string]any{
						"route":     "US-40",
						"direction": "WB",
					},
				},
			},
		},
	}

	items := FlattenMapFeatures(features, "Chain Law")

	require.Len(t, items, 2)

	assert.Equal(t, "sub-1", items[0].ID)
	assert.Equal(t, "Chain law in effect", items[0].Name)
	assert.Equal(t, "I-70", items[0].Route)
	assert.Equal(t, "EB", items[0].Direction)
	assert.Equal(t, "active", items[0].Status)
	assert.Equal(t, "high", items[0].Impact)
	assert.Equal(t, "2024-01-01T12:00:00Z", items[0].Updated)
	assert.Equal(t, "https://maps.cotrip.org/event/456", items[0].Link)

	assert.Equal(t, "US-40", items[1].Route)
	assert.Equal(t, "WB", items[1].Direction)
}

func TestFlattenMapFeatures_SynonymPriority(t *testing.T) {
	// route outranks roadway when both are present.
	features := []MapFeature{
		{
			Tooltip: "Work zone",
			Features: []SubFeature{
				{ID: "a", Properties: map[string]any{"route": "CO-9", "roadway": "I-25"}},
			},
		},
	}

	items := FlattenMapFeatures(features, "Road Work")

	require.Len(t, items, 1)
	assert.Equal(t, "CO-9", items[0].Route)
}

func TestFlattenMapFeatures_DropsClusterPlaceholders(t *testing.T) {
	features := []MapFeature{
		{Tooltip: "Show 12 cameras"},
		{Tooltip: "show 3 road work events"},
		{Tooltip: "Real closure", URI: "/event/1"},
	}

	items := FlattenMapFeatures(features, "Road Report")

	require.Len(t, items, 1)
	assert.Equal(t, "Real closure", items[0].Name)
}

func TestFlattenMapFeatures_SubFeatureNameFallback(t *testing.T) {
	features := []MapFeature{
		{
			Features: []SubFeature{
				{ID: "x", Properties: map[string]any{"name": "Eisenhower Tunnel"}},
				{ID: "y", Properties: map[string]any{}},
			},
		},
	}

	items := FlattenMapFeatures(features, "Winter Driving")

	require.Len(t, items, 2)
	assert.Equal(t, "Eisenhower Tunnel", items[0].Name)
	assert.Equal(t, "Road item", items[1].Name)
}

func TestFlattenMapFeatures_NumericProperty(t *testing.T) {
	features := []MapFeature{
		{
			Tooltip: "Incident",
			Features: []SubFeature{
				{ID: "n", Properties: map[string]any{"severity": float64(3)}},
			},
		},
	}

	items := FlattenMapFeatures(features, "Road Report")

	require.Len(t, items, 1)
	assert.Equal(t, "3", items[0].Impact)
}

func TestFlattenMapFeatures_GeneratedIDs(t *testing.T) {
	features := []MapFeature{
		{Tooltip: "No URI leaf"},
		{Tooltip: "Parent", Features: []SubFeature{{Properties: map[string]any{}}}},
	}

	items := FlattenMapFeatures(features, "Restriction")

	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ID)
	assert.NotEmpty(t, items[1].ID)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestCameraImages_PicksNonVideoView(t *testing.T) {
	features := []MapFeature{
		{
			Tooltip:  "I-70 Vail Pass",
			TypeName: "Camera",
			Views: []CameraView{
				{Category: "video", URL: "https://example.com/stream.m3u8"},
				{Category: "image", URL: "https://example.com/still.jpg"},
			},
		},
	}

	cams := CameraImages(features)

	require.Len(t, cams, 1)
	assert.Equal(t, "I-70 Vail Pass", cams[0].Name)
	assert.Equal(t, "https://example.com/still.jpg", cams[0].ImageURL)
}

func TestCameraImages_DropsCamerasWithoutStill(t *testing.T) {
	features := []MapFeature{
		{Tooltip: "Video only", TypeName: "Camera", Views: []CameraView{{Category: "video", URL: "https://example.com/v"}}},
		{Tooltip: "No views", TypeName: "Camera"},
		{Tooltip: "Show 40 cameras", TypeName: "Camera", Views: []CameraView{{Category: "image", URL: "https://example.com/x.jpg"}}},
	}

	assert.Empty(t, CameraImages(features))
}
