package pipeline

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/scoring"
)

// labelTolerance is half a unit of the displayed score. Labels come from the
// unrounded score, so a record shown at 80.0 may carry PC.
const labelTolerance = 0.05

// Violation is a single broken output invariant
type Violation struct {
	Check    string
	Index    int
	RecordID string
	Detail   string
}

func (v Violation) String() string {
	if v.Index < 0 {
		return fmt.Sprintf("%s: %s", v.Check, v.Detail)
	}
	return fmt.Sprintf("%s: record %d (%s): %s", v.Check, v.Index, v.RecordID, v.Detail)
}

// VerificationReport contains the results of a result verification
type VerificationReport struct {
	RunID            string
	VerificationTime time.Time
	RecordsChecked   int
	Violations       []Violation
	Duration         time.Duration
}

// OK reports whether no invariant was violated
func (r *VerificationReport) OK() bool {
	return len(r.Violations) == 0
}

// Verifier checks a finished result against the pipeline's output invariants
type Verifier struct {
	logger *zap.Logger
}

// NewVerifier creates a new verifier
func NewVerifier(logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{logger: logger}
}

// Verify checks score range, label consistency, ordering and stats totals
func (v *Verifier) Verify(res *Result) *VerificationReport {
	start := time.Now()
	report := &VerificationReport{
		RunID:            res.RunID,
		VerificationTime: start,
		RecordsChecked:   len(res.Records),
	}
	add := func(check string, i int, detail string) {
		id := ""
		if i >= 0 && i < len(res.Records) {
			id = res.Records[i].ID
		}
		report.Violations = append(report.Violations, Violation{Check: check, Index: i, RecordID: id, Detail: detail})
	}

	for i, rec := range res.Records {
		if math.IsNaN(rec.Score) || rec.Score < 0 || rec.Score > 100 {
			add("score_range", i, fmt.Sprintf("score %v outside [0,100]", rec.Score))
		}
		lo, hi := scoring.Classify(rec.Score-labelTolerance), scoring.Classify(rec.Score+labelTolerance)
		if rec.Label != lo && rec.Label != hi {
			add("label", i, fmt.Sprintf("label %s does not match score %v", rec.Label, rec.Score))
		}
		if i > 0 && res.Records[i-1].Score < rec.Score {
			add("order", i, fmt.Sprintf("score %v follows %v", rec.Score, res.Records[i-1].Score))
		}
	}

	if res.Stats.Total != len(res.Records) {
		add("stats_total", -1, fmt.Sprintf("stats total %d, records %d", res.Stats.Total, len(res.Records)))
	}

	report.Duration = time.Since(start)

	if !report.OK() {
		for _, viol := range report.Violations {
			v.logger.Error("Result verification failed",
				zap.String("runID", res.RunID),
				zap.String("violation", viol.String()))
		}
	} else {
		v.logger.Debug("Result verified",
			zap.String("runID", res.RunID),
			zap.Int("records", report.RecordsChecked),
			zap.Duration("duration", report.Duration))
	}

	return report
}
