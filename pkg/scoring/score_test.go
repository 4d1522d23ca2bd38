package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepFunctions(t *testing.T) {
	assert.Equal(t, 1.0, DepthScore(850))
	assert.Equal(t, 0.3, DepthScore(500), "500 ppm is not deeper than the cut")
	assert.Equal(t, 1.0, PeriodScore(29.99))
	assert.Equal(t, 0.4, PeriodScore(30))
	assert.Equal(t, 1.0, DurationScore(9.99))
	assert.Equal(t, 0.6, DurationScore(10))
}

func TestScore_ScenarioA(t *testing.T) {
	// TESS: period 3.5 d, duration 2.3 h, depth 850 ppm, Tmag 11.5 -> 0.30
	score := Score(3.5, 2.3, 850, 0.30)

	assert.InDelta(t, 59.4, score, 1e-9)
	assert.Equal(t, "PC", Classify(score).String())
}

func TestScore_Extremes(t *testing.T) {
	best := Score(1, 1, 10000, 1)
	worst := Score(400, 20, 10, 0)

	assert.InDelta(t, 100.0, best, 1e-9)
	assert.InDelta(t, 100*(0.27*0.3+0.08*0.4+0.07*0.6), worst, 1e-9)
}

func TestScore_Bounded(t *testing.T) {
	periods := []float64{0.1, 29.9, 30, 365}
	durations := []float64{0.5, 9.9, 10, 48}
	depths := []float64{1, 500, 500.1, 1e6}
	mags := []float64{0, 0.25, 0.5, 0.75, 1}

	for _, p := range periods {
		for _, d := range durations {
			for _, dp := range depths {
				for _, m := range mags {
					s := Score(p, d, dp, m)
					assert.GreaterOrEqual(t, s, 0.0)
					assert.LessOrEqual(t, s, 100.0+1e-9)
				}
			}
		}
	}
}

func TestBreakdown(t *testing.T) {
	c := Breakdown(45, 12, 300, 0.5)

	assert.Equal(t, Components{Magnitude: 0.5, Depth: 0.3, Period: 0.4, Duration: 0.6}, c)
	assert.InDelta(t, Score(45, 12, 300, 0.5), c.Total(), 0)
}
