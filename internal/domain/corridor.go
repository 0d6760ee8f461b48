package domain

import "regexp"

// Corridor is a named highway segment used as a filter facet for road items
// and cameras. Matching is applied in-process over an already-fetched list;
// it never re-queries the upstream source.
type Corridor struct {
	Key   string
	Label string
	re    *regexp.Regexp
}

// Corridors lists the filterable Colorado highway corridors.
var Corridors = []Corridor{
	{Key: "I70", Label: "I-70", re: regexp.MustCompile(`(?i)\bI[-\s]?70\b`)},
	{Key: "I25", Label: "I-25", re: regexp.MustCompile(`(?i)\bI[-\s]?25\b`)},
	{Key: "US285", Label: "US-285", re: regexp.MustCompile(`(?i)\bUS[-\s]?285\b`)},
	{Key: "US550", Label: "US-550", re: regexp.MustCompile(`(?i)\bUS[-\s]?550\b`)},
	{Key: "US50", Label: "US-50", re: regexp.MustCompile(`(?i)\bUS[-\s]?50\b`)},
	{Key: "US24", Label: "US-24", re: regexp.MustCompile(`(?i)\bUS[-\s]?24\b`)},
	{Key: "US36", Label: "US-36", re: regexp.MustCompile(`(?i)\bUS[-\s]?36\b`)},
	{Key: "CO9", Label: "CO-9", re: regexp.MustCompile(`(?i)\bCO[-\s]?9\b`)},
	{Key: "CO82", Label: "CO-82", re: regexp.MustCompile(`(?i)\bCO[-\s]?82\b`)},
	{Key: "CO14", Label: "CO-14", re: regexp.MustCompile(`(?i)\bCO[-\s]?14\b`)},
}

// MatchCorridor reports whether text mentions the corridor with the given
// key. An unknown or empty key matches everything, mirroring the "ALL"
// filter.
func MatchCorridor(key, text string) bool {
	for _, c := range Corridors {
		if c.Key == key {
			return c.re.MatchString(text)
		}
	}
	return true
}
