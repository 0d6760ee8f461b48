package domain

import (
	"regexp"
	"strings"
)

// Intent is the coarse topic of a chat message.
type Intent string

const (
	IntentTraffic Intent = "traffic"
	IntentCameras Intent = "cameras"
	IntentSnow    Intent = "snow"
	IntentAlerts  Intent = "alerts"
	IntentHourly  Intent = "hourly"
	IntentDaily   Intent = "daily"
	IntentWeather Intent = "weather"
)

// intentRules is an ordered rule table over the lower-cased message. First
// match wins, so overlapping keywords resolve deterministically: a message
// mentioning chains, snow, and alerts classifies as traffic because traffic
// is checked first. This is a closed keyword classifier, nothing more.
var intentRules = []struct {
	re     *regexp.Regexp
	intent Intent
}{
	{regexp.MustCompile(`(traffic|road|closure|chains?|accident|crash|conditions on|i-?70|i-?25|us-\d+|co-\d+)`), IntentTraffic},
	{regexp.MustCompile(`(camera|cam)`), IntentCameras},
	{regexp.MustCompile(`(snow|powder|inches|ski|resort)`), IntentSnow},
	{regexp.MustCompile(`(alert|warning|watch|advis)`), IntentAlerts},
	{regexp.MustCompile(`(hour|24)`), IntentHourly},
	{regexp.MustCompile(`(3[- ]?day|three day|daily|next days?)`), IntentDaily},
}

// ClassifyIntent selects the intent of a chat message. Unmatched messages
// default to the general weather intent.
func ClassifyIntent(message string) Intent {
	s := strings.ToLower(message)
	for _, rule := range intentRules {
		if rule.re.MatchString(s) {
			return rule.intent
		}
	}
	return IntentWeather
}
