package scoring

import "github.com/David-Botos/transit-ingress/pkg/model"

// Disposition thresholds on the 0-100 score
const (
	ConfirmedThreshold = 80.0
	CandidateThreshold = 46.0
)

// Classify maps a score to its disposition label
func Classify(score float64) model.Label {
	switch {
	case score >= ConfirmedThreshold:
		return model.LabelCP
	case score >= CandidateThreshold:
		return model.LabelPC
	default:
		return model.LabelAPC
	}
}

// Passes reports whether a score clears the confirmed-planet threshold
func Passes(score float64) bool {
	return score >= ConfirmedThreshold
}
