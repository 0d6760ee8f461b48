package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func constantSeries(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSummarizeSnowfall_Empty(t *testing.T) {
	report := SummarizeSnowfall(nil)

	assert.Equal(t, float64(0), report.Last24)
	assert.Equal(t, float64(0), report.Last72)
	assert.Equal(t, "cm", report.Unit)
}

func TestSummarizeSnowfall_AllZero(t *testing.T) {
	report := SummarizeSnowfall(constantSeries(0, 100))

	assert.Equal(t, float64(0), report.Last24)
	assert.Equal(t, float64(0), report.Last72)
}

func TestSummarizeSnowfall_ConstantSeries(t *testing.T) {
	report := SummarizeSnowfall(constantSeries(0.5, 168))

	assert.InDelta(t, 12.0, report.Last24, 1e-9)
	assert.InDelta(t, 36.0, report.Last72, 1e-9)
}

func TestSummarizeSnowfall_SeriesShorterThanWindow(t *testing.T) {
	// 30 hourly values of 1cm: the 24h total takes the trailing 24, the 72h
	// total is capped at the series length.
	report := SummarizeSnowfall(constantSeries(1, 30))

	assert.InDelta(t, 24.0, report.Last24, 1e-9)
	assert.InDelta(t, 30.0, report.Last72, 1e-9)
}

func TestSummarizeSnowfall_TrailingEntriesOnly(t *testing.T) {
	vals := constantSeries(0, 48)
	for i := 24; i < 48; i++ {
		vals[i] = 2
	}

	report := SummarizeSnowfall(vals)

	assert.InDelta(t, 48.0, report.Last24, 1e-9)
	assert.InDelta(t, 48.0, report.Last72, 1e-9)
}

func TestCmToInches(t *testing.T) {
	assert.InDelta(t, 1.0, CmToInches(2.54), 1e-9)
	assert.InDelta(t, 0.0, CmToInches(0), 1e-9)
	assert.InDelta(t, 10.0, CmToInches(25.4), 1e-9)
}
