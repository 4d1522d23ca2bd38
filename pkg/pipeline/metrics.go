package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

// Metrics tracks the counters of a single run
type Metrics struct {
	RunID         string
	StartTime     time.Time
	EndTime       time.Time
	RowsRead      int
	RecordsScored int
	Corrections   int
	Dropped       map[model.DropReason]int
	Labels        map[model.Label]int
	Workers       int
	Chunks        int
}

// NewMetrics creates a new Metrics instance
func NewMetrics(runID string, workers int) *Metrics {
	return &Metrics{
		RunID:     runID,
		StartTime: time.Now(),
		Dropped:   make(map[model.DropReason]int),
		Labels:    make(map[model.Label]int),
		Workers:   workers,
	}
}

// record tallies one row outcome
func (m *Metrics) record(o rowOutcome) {
	m.RowsRead++
	if !o.scored() {
		m.Dropped[o.reason]++
		return
	}
	m.RecordsScored++
	m.Corrections += o.corrections
	m.Labels[o.record.Label]++
}

// TotalDropped returns the number of rows excluded for any reason
func (m *Metrics) TotalDropped() int {
	total := 0
	for _, n := range m.Dropped {
		total += n
	}
	return total
}

// Complete marks the run as finished
func (m *Metrics) Complete() {
	m.EndTime = time.Now()
}

// Duration returns the duration of the run
func (m *Metrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// CalculateThroughput calculates the rows/second throughput
func (m *Metrics) CalculateThroughput() float64 {
	seconds := m.Duration().Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(m.RowsRead) / seconds
}

// Log writes a run summary
func (m *Metrics) Log(logger *zap.Logger) {
	fields := []zap.Field{
		zap.String("runID", m.RunID),
		zap.Duration("duration", m.Duration()),
		zap.Int("rowsRead", m.RowsRead),
		zap.Int("recordsScored", m.RecordsScored),
		zap.Int("rowsDropped", m.TotalDropped()),
		zap.Int("corrections", m.Corrections),
		zap.Int("workers", m.Workers),
		zap.Int("chunks", m.Chunks),
		zap.Float64("throughput", m.CalculateThroughput()),
	}
	for _, reason := range model.DropReasons {
		if n := m.Dropped[reason]; n > 0 {
			fields = append(fields, zap.Int("dropped."+reason.String(), n))
		}
	}
	for _, label := range []model.Label{model.LabelCP, model.LabelPC, model.LabelAPC} {
		fields = append(fields, zap.Int("label."+label.String(), m.Labels[label]))
	}
	logger.Info("Scoring run completed", fields...)
}
