package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

func TestVerifier_AcceptsRoundedBoundary(t *testing.T) {
	// 79.96 displays as 80.0 but was labelled from the unrounded score
	res := &Result{
		Records: []model.CandidateRecord{{ID: "a", Score: 80.0, Label: model.LabelPC}},
		Stats:   model.DatasetStats{Total: 1},
	}

	assert.True(t, NewVerifier(nil).Verify(res).OK())
}

func TestVerifier_ReportsViolations(t *testing.T) {
	res := &Result{
		RunID: "run",
		Records: []model.CandidateRecord{
			{ID: "a", Score: 50, Label: model.LabelPC},
			{ID: "b", Score: 90, Label: model.LabelAPC},
			{ID: "c", Score: 120, Label: model.LabelCP},
		},
		Stats: model.DatasetStats{Total: 2},
	}

	report := NewVerifier(nil).Verify(res)
	require.False(t, report.OK())

	checks := map[string]int{}
	for _, v := range report.Violations {
		checks[v.Check]++
	}
	assert.Equal(t, map[string]int{"score_range": 1, "label": 1, "order": 2, "stats_total": 1}, checks)
}
