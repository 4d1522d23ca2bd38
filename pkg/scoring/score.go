// Package scoring turns normalized candidate fields into a 0-100 likelihood
// score and a disposition label.
package scoring

// Weights applied to the four sub-scores. They sum to 1.
const (
	WeightMagnitude = 0.58
	WeightDepth     = 0.27
	WeightPeriod    = 0.08
	WeightDuration  = 0.07
)

// Step function cut points, in canonical units
const (
	DeepTransitPPM     = 500.0 // depth strictly above scores full
	ShortPeriodDays    = 30.0  // period strictly below scores full
	ShortDurationHours = 10.0  // duration strictly below scores full
)

// Components are the four weighted inputs of a score, each in [0,1]
type Components struct {
	Magnitude float64
	Depth     float64
	Period    float64
	Duration  float64
}

// Total returns 100 times the weighted sum of the components
func (c Components) Total() float64 {
	sum := WeightMagnitude*c.Magnitude +
		WeightDepth*c.Depth +
		WeightPeriod*c.Period +
		WeightDuration*c.Duration
	return 100.0 * sum
}

// DepthScore rewards transits deeper than 500 ppm
func DepthScore(depth float64) float64 {
	if depth > DeepTransitPPM {
		return 1.0
	}
	return 0.3
}

// PeriodScore rewards orbits shorter than 30 days
func PeriodScore(period float64) float64 {
	if period < ShortPeriodDays {
		return 1.0
	}
	return 0.4
}

// DurationScore rewards transits shorter than 10 hours
func DurationScore(duration float64) float64 {
	if duration < ShortDurationHours {
		return 1.0
	}
	return 0.6
}

// Breakdown computes the sub-scores for unit-corrected values
func Breakdown(period, duration, depth, normalizedMag float64) Components {
	return Components{
		Magnitude: normalizedMag,
		Depth:     DepthScore(depth),
		Period:    PeriodScore(period),
		Duration:  DurationScore(duration),
	}
}

// Score combines unit-corrected period (days), duration (hours), depth (ppm)
// and a normalized magnitude in [0,1] into a score in [0,100]
func Score(period, duration, depth, normalizedMag float64) float64 {
	return Breakdown(period, duration, depth, normalizedMag).Total()
}
