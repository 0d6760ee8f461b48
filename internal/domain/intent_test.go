package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"what's the traffic like", IntentTraffic},
		{"any closures on i70", IntentTraffic},
		{"conditions on US-550", IntentTraffic},
		{"show me a camera near vail", IntentCameras},
		{"how much powder at breckenridge", IntentSnow},
		{"fresh snow for Vail", IntentSnow},
		{"any warnings today", IntentAlerts},
		{"winter weather advisory?", IntentAlerts},
		{"next 24 hours please", IntentHourly},
		{"hourly forecast", IntentHourly},
		{"3-day outlook", IntentDaily},
		{"three day forecast", IntentDaily},
		{"how's it looking outside", IntentWeather},
		{"", IntentWeather},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyIntent(tc.message), "message: %q", tc.message)
	}
}

func TestClassifyIntent_PriorityOrder(t *testing.T) {
	// Traffic keywords outrank snow and alert keywords because the rules are
	// evaluated in a fixed order.
	got := ClassifyIntent("are chains required for I-70 due to snow alerts")
	assert.Equal(t, IntentTraffic, got)

	// Snow outranks alerts.
	assert.Equal(t, IntentSnow, ClassifyIntent("snow warnings for skiing?"))

	// Cameras outrank snow.
	assert.Equal(t, IntentCameras, ClassifyIntent("cam at the ski resort"))
}

func TestClassifyIntent_CaseInsensitive(t *testing.T) {
	assert.Equal(t, IntentTraffic, ClassifyIntent("TRAFFIC ON I-25"))
	assert.Equal(t, IntentSnow, ClassifyIntent("POWDER DAY"))
}
