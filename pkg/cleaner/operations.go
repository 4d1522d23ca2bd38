// pkg/cleaner/operations.go
package cleaner

import (
	"math"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

const (
	hoursPerDay = 24.0
	ppmPerUnit  = 1e6
)

// applyUnitCorrections converts catalog-specific units to hours and ppm.
// Only the Kepler cumulative table stores duration in days and, for some
// rows, depth as a fraction.
func applyUnitCorrections(
	variant model.SourceVariant,
	duration, depth float64,
) (float64, float64, []model.Correction) {
	if variant != model.VariantKepler {
		return duration, depth, nil
	}

	corrections := make([]model.Correction, 0, 2)

	hours := duration * hoursPerDay
	corrections = append(corrections, model.Correction{
		Field:         "duration",
		OriginalValue: duration,
		NewValue:      hours,
		Operation:     "days_to_hours",
	})

	if depth < 1 {
		ppm := depth * ppmPerUnit
		corrections = append(corrections, model.Correction{
			Field:         "depth",
			OriginalValue: depth,
			NewValue:      ppm,
			Operation:     "fraction_to_ppm",
		})
		depth = ppm
	}

	return hours, depth, corrections
}

// magnitudeScale maps a magnitude to brightness as (zeroPoint - mag) / span
type magnitudeScale struct {
	zeroPoint float64
	span      float64
}

func scaleFor(variant model.SourceVariant) (magnitudeScale, bool) {
	switch variant {
	case model.VariantTESS:
		return magnitudeScale{zeroPoint: 13.0, span: 5.0}, true
	case model.VariantKepler:
		return magnitudeScale{zeroPoint: 14.0, span: 6.0}, true
	case model.VariantGeneric:
		return magnitudeScale{zeroPoint: 13.5, span: 6.0}, true
	default:
		return magnitudeScale{}, false
	}
}

// NormalizeMagnitude maps a stellar magnitude to [0,1], brighter stars scoring
// higher. It fails for non-positive or non-finite magnitudes and unknown variants.
// A valid magnitude that clamps to 0 is a result, not a failure.
func NormalizeMagnitude(mag float64, variant model.SourceVariant) (float64, bool) {
	if math.IsNaN(mag) || math.IsInf(mag, 0) || mag <= 0 {
		return 0, false
	}
	scale, ok := scaleFor(variant)
	if !ok {
		return 0, false
	}
	return clamp((scale.zeroPoint-mag)/scale.span, 0, 1), true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
