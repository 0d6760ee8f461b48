package domain

// SnowReport holds rolling snowfall totals in centimeters.
type SnowReport struct {
	Last24 float64 `json:"last24"`
	Last72 float64 `json:"last72"`
	Unit   string  `json:"unit"`
}

// DailySnow is one day of the snowfall-oriented daily series.
type DailySnow struct {
	Day         string  `json:"day"`
	SnowfallSum float64 `json:"snowfall_sum"` // centimeters
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
}

// SummarizeSnowfall reduces an hourly snowfall series (cm) into trailing 24h
// and 72h totals. "Trailing N" means the final N entries of the series as
// returned, not aligned to now; a series shorter than N sums whatever exists.
// Zero or missing per-hour values count as zero.
func SummarizeSnowfall(hourlyCm []float64) SnowReport {
	return SnowReport{
		Last24: trailingSum(hourlyCm, 24),
		Last72: trailingSum(hourlyCm, 72),
		Unit:   "cm",
	}
}

func trailingSum(vals []float64, n int) float64 {
	start := len(vals) - n
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, v := range vals[start:] {
		sum += v
	}
	return sum
}

// CmToInches converts centimeters to inches.
func CmToInches(cm float64) float64 {
	return cm / 2.54
}
