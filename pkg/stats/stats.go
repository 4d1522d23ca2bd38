// Package stats summarizes the score distribution of a scored dataset.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/David-Botos/transit-ingress/pkg/converter"
	"github.com/David-Botos/transit-ingress/pkg/model"
	"github.com/David-Botos/transit-ingress/pkg/scoring"
)

// Summarize computes dataset statistics over scores. Callers pass the
// displayed (1dp) scores. All outputs are rounded to 2dp and an empty
// input yields zeros.
func Summarize(scores []float64) model.DatasetStats {
	if len(scores) == 0 {
		return model.DatasetStats{}
	}

	mean, std := stat.PopMeanStdDev(scores, nil)

	passed := 0
	for _, s := range scores {
		if scoring.Passes(s) {
			passed++
		}
	}
	passRate := 100.0 * float64(passed) / float64(len(scores))

	return model.DatasetStats{
		Total:    len(scores),
		Mean:     converter.Round(mean, 2),
		Median:   converter.Round(Median(scores), 2),
		Std:      converter.Round(std, 2),
		PassRate: converter.Round(passRate, 2),
	}
}

// Median returns the middle value of xs, averaging the two middle values
// for even lengths. xs is not modified.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
