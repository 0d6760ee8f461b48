// Package chat builds plain-text answers for the site's chat widget. A
// keyword classifier picks an intent, the matching assembler renders data
// from the aggregation service into a fixed template, and weather-style
// answers optionally pass through an LLM polish step. The templates are the
// contract: polish may reword, but the assembled draft is always a complete
// answer on its own.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joeruch23/colorado-weather-network/internal/domain"
	"github.com/joeruch23/colorado-weather-network/internal/observability"
	"github.com/joeruch23/colorado-weather-network/internal/service"
)

// Request is the decoded chat message. Zero coordinates count as unset.
type Request struct {
	Message string  `json:"message"`
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
	City    string  `json:"city,omitempty"`
}

// DataSource is the slice of the aggregation service the responder needs.
type DataSource interface {
	Alerts(ctx context.Context) []domain.Alert
	TravelAlerts(ctx context.Context) []domain.Alert
	ForecastSummary(ctx context.Context, lat, lon float64) (service.ForecastSummary, bool)
	DailySnow(ctx context.Context, lat, lon float64) []domain.DailySnow
	ResolvePlace(ctx context.Context, lat, lon float64, city string) domain.Place
}

// Polisher rewrites a drafted answer for clarity.
type Polisher interface {
	Polish(ctx context.Context, draft string) (string, error)
}

// Responder answers chat messages.
type Responder struct {
	src      DataSource
	polisher Polisher // nil disables polishing
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewResponder creates a Responder. A nil polisher disables the LLM step
// and every answer is the raw template output.
func NewResponder(src DataSource, polisher Polisher, logger *slog.Logger, metrics *observability.Metrics) *Responder {
	return &Responder{
		src:      src,
		polisher: polisher,
		logger:   logger.With("component", "chat"),
		metrics:  metrics,
	}
}

// Reply classifies the message and assembles the answer text. It never
// fails: upstream trouble surfaces as an apologetic template, not an error.
func (r *Responder) Reply(ctx context.Context, req Request) string {
	q := strings.TrimSpace(req.Message)
	intent := domain.ClassifyIntent(q)
	r.metrics.ChatRequests.WithLabelValues(string(intent)).Inc()

	switch intent {
	case domain.IntentTraffic:
		return r.trafficReply(ctx, q)
	case domain.IntentCameras:
		return camerasReply
	case domain.IntentSnow:
		return r.snowReply(ctx, q, req)
	default:
		return r.weatherReply(ctx, intent, req)
	}
}

// city-pair extraction for corridor questions: "from X to Y" preferred,
// bare "X to Y" as the fallback.
var (
	fromToPattern = regexp.MustCompile(`(?i)from\s+([^,]+?)\s+to\s+([^,?!.]+)`)
	pairPattern   = regexp.MustCompile(`(?i)([\w\s.-]+)\s+to\s+([\w\s.-]+)`)
)

func extractCities(q string) (string, string, bool) {
	m := fromToPattern.FindStringSubmatch(q)
	if m == nil {
		m = pairPattern.FindStringSubmatch(q)
	}
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// corridorLinks maps well-known city pairs to pre-filtered COtrip map
// searches. Matching is substring-based in either direction.
var corridorLinks = []struct {
	a, b  string
	label string
	url   string
}{
	{
		"denver", "vail",
		"I-70 Denver ⇄ Vail cameras & events",
		"https://maps.cotrip.org/search/roadway%3DI-70/%40-109.05147%2C39.10202%2C-102.04872%2C39.78645/%40-108.6812%2C39.9851%2C6?show=roadWork%2CwinterDriving%2CroadReports%2CweatherWarnings%2CchainLaws",
	},
	{
		"denver", "colorado springs",
		"I-25 Denver ⇄ Colorado Springs events",
		"https://maps.cotrip.org/search/roadway%3DI-25/%40-105.01816%2C36.99388%2C-104.47999%2C40.99807/%40-105.87517%2C39.27293%2C7?show=winterDriving%2CroadReports%2CchainLaws%2CmileMarkers",
	},
	{
		"durango", "ouray",
		"US-550 Durango ⇄ Ouray events",
		"https://maps.cotrip.org/search/roadway%3DUS-550/%40-108.8%2C36.8%2C-107.2%2C39.0/%40-107.7%2C37.7%2C9?show=roadWork%2CwinterDriving%2CroadReports%2CweatherWarnings%2CchainLaws",
	},
}

func corridorLink(a, b string) (label, url string, ok bool) {
	sa, sb := strings.ToLower(a), strings.ToLower(b)
	for _, c := range corridorLinks {
		forward := strings.Contains(sa, c.a) && strings.Contains(sb, c.b)
		reverse := strings.Contains(sb, c.a) && strings.Contains(sa, c.b)
		if forward || reverse {
			return c.label, c.url, true
		}
	}
	return "", "", false
}

func (r *Responder) trafficReply(ctx context.Context, q string) string {
	var links []string
	if a, b, ok := extractCities(q); ok {
		if label, url, ok := corridorLink(a, b); ok {
			links = append(links, "• "+label+": "+url)
		}
	}
	if len(links) == 0 {
		links = append(links,
			"• COtrip list of events: https://maps.cotrip.org/list/events",
			"• COtrip cameras: https://maps.cotrip.org/list/cameras",
		)
	}

	relevant := r.src.TravelAlerts(ctx)

	lines := append([]string{"Roads (COtrip):"}, links...)
	if len(relevant) > 0 {
		lines = append(lines, "Recent travel-related alerts:")
	} else {
		lines = append(lines, "No travel-related NWS alerts in Colorado right now.")
	}
	for _, a := range relevant[:min(4, len(relevant))] {
		lines = append(lines, "• "+a.Event+": "+truncate(a.Headline, 100))
	}
	return strings.Join(lines, "\n")
}

const camerasReply = "Try the cameras page here: /cameras\n" +
	"Official COtrip cameras list (filters & search): https://maps.cotrip.org/list/cameras\n" +
	"Tip: In our Cameras page use I‑70 / I‑25 filters and search spots like “Eisenhower” or “Vail”."

// snowTargetPattern pulls a trailing place name out of messages like
// "snow for Vail" or "how much powder at Wolf Creek".
var snowTargetPattern = regexp.MustCompile(`(?i)(?:at|for)\s+([\w\s.'-]+)$`)

func (r *Responder) snowReply(ctx context.Context, q string, req Request) string {
	place := r.src.ResolvePlace(ctx, req.Lat, req.Lon, strings.TrimSpace(req.City))
	if place == domain.DenverFallback {
		// Neither coordinates nor a usable city; try a place name from the
		// message itself before settling on the default.
		if m := snowTargetPattern.FindStringSubmatch(q); m != nil {
			place = r.src.ResolvePlace(ctx, 0, 0, strings.TrimSpace(m[1]))
		}
	}

	days := r.src.DailySnow(ctx, place.Lat, place.Lon)
	if len(days) == 0 {
		return "I couldn't fetch snow totals just now. Try a specific place like “snow for Vail” or check the /winter page."
	}

	dayCm := func(i int) float64 {
		if i < len(days) {
			return days[i].SnowfallSum
		}
		return 0
	}
	day0 := dayCm(0)
	total72 := day0 + dayCm(1) + dayCm(2)

	return strings.Join([]string{
		fmt.Sprintf("Snow outlook for %s:", place.Name),
		fmt.Sprintf("• Today: %.1f\" (approx)", domain.CmToInches(day0)),
		fmt.Sprintf("• Next 72h total: %.1f\"", domain.CmToInches(total72)),
		fmt.Sprintf("• High/Low today: %d° / %d°", round(days[0].TempMax), round(days[0].TempMin)),
		"Note: This is model guidance from Open‑Meteo and may differ from resort reports.",
	}, "\n")
}

func (r *Responder) weatherReply(ctx context.Context, intent domain.Intent, req Request) string {
	place := r.src.ResolvePlace(ctx, req.Lat, req.Lon, strings.TrimSpace(req.City))
	summary, ok := r.src.ForecastSummary(ctx, place.Lat, place.Lon)

	var text string
	switch intent {
	case domain.IntentAlerts:
		text = r.alertsText(ctx)
	case domain.IntentHourly:
		text = hourlyText(summary.Hourly24)
	case domain.IntentDaily:
		text = dailyText(summary.Daily3)
	default:
		text = currentText(place, summary, ok)
	}

	return r.polish(ctx, text)
}

func (r *Responder) alertsText(ctx context.Context) string {
	alerts := r.src.Alerts(ctx)
	if len(alerts) == 0 {
		return "No active NWS alerts for Colorado right now."
	}
	lines := []string{"Active Colorado alerts (NWS):"}
	for _, a := range alerts[:min(6, len(alerts))] {
		lines = append(lines, "• "+a.Event+": "+truncate(a.Headline, 120))
	}
	lines = append(lines, "See /alerts for the full list.")
	return strings.Join(lines, "\n")
}

func hourlyText(rows []domain.ForecastPoint) string {
	if len(rows) == 0 {
		return "Hourly data unavailable at the moment. Try again shortly."
	}
	lines := []string{"Next 24 hours (temp° / precip%):"}
	for _, h := range rows {
		lines = append(lines, fmt.Sprintf("• %s: %d° / %d%%", fmtHour(h.Time), round(h.Temperature), round(h.PrecipProbability)))
	}
	return strings.Join(lines, "\n")
}

func dailyText(rows []domain.DailySummary) string {
	if len(rows) == 0 {
		return "Daily data unavailable at the moment. Try again shortly."
	}
	lines := []string{"Next 3 days (high/low, precip sum):"}
	for _, d := range rows {
		lines = append(lines, fmt.Sprintf("• %s: %d°/%d°, precip %s",
			fmtDow(d.Day), round(d.TempMax), round(d.TempMin), fmtNum(d.PrecipSum)))
	}
	return strings.Join(lines, "\n")
}

func currentText(place domain.Place, summary service.ForecastSummary, ok bool) string {
	if !ok {
		return "I couldn’t get current conditions. Try again or ask for “hourly” or “3‑day” instead."
	}
	cur := summary.Current
	text := fmt.Sprintf("Current for %s: %d°, wind %s m/s, RH %s%%",
		place.Name, round(cur.Temperature), fmtNum(cur.WindSpeed), fmtNum(cur.Humidity))
	if len(summary.Hourly24) > 0 {
		first := summary.Hourly24[0]
		text += fmt.Sprintf(" · Next hour ~ %d°, precip %d%%", round(first.Temperature), round(first.PrecipProbability))
	}
	text += "\nAsk me for “hourly” or “3‑day” for details."
	return text
}

// polish runs the draft through the LLM when configured. The draft stands
// on its own, so any polish failure falls back to it.
func (r *Responder) polish(ctx context.Context, draft string) string {
	if r.polisher == nil {
		r.metrics.ChatPolish.WithLabelValues("skipped").Inc()
		return draft
	}
	polished, err := r.polisher.Polish(ctx, draft)
	if err != nil {
		r.metrics.ChatPolish.WithLabelValues("error").Inc()
		r.logger.Warn("answer polish failed", "error", err)
		return draft
	}
	r.metrics.ChatPolish.WithLabelValues("applied").Inc()
	return polished
}

// fmtHour renders a timestamp as a 12-hour label like "3PM".
func fmtHour(t time.Time) string {
	h := t.Hour()
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%d%s", ((h+11)%12)+1, ampm)
}

// fmtDow renders an ISO date as a short weekday like "Mon". Unparseable
// input falls through unchanged.
func fmtDow(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.Format("Mon")
}

// fmtNum renders a float the way the upstream JSON carries it: no trailing
// zeros, integers without a decimal point.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round(v float64) int {
	return int(math.Round(v))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
