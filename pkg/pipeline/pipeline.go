// Package pipeline runs datasets through column resolution, normalization,
// scoring and classification, and collects the ranked records with their
// statistics.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/cleaner"
	"github.com/David-Botos/transit-ingress/pkg/model"
	"github.com/David-Botos/transit-ingress/pkg/resolver"
	"github.com/David-Botos/transit-ingress/pkg/stats"
)

// DefaultChunkSize is the number of rows handed to a goroutine at once
const DefaultChunkSize = 512

// Options configures a Pipeline
type Options struct {
	Workers   int  // 0 uses runtime.NumCPU
	ChunkSize int  // 0 uses DefaultChunkSize
	Verify    bool // check output invariants after every run
}

// Pipeline scores datasets. It holds no per-run state and may run several
// jobs concurrently.
type Pipeline struct {
	normalizer *cleaner.Normalizer
	verifier   *Verifier
	logger     *zap.Logger
	workers    int
	chunkSize  int
	verify     bool
}

// Result is the outcome of a run
type Result struct {
	RunID        string
	Variant      model.SourceVariant
	Origin       model.Origin
	Columns      resolver.ColumnMap
	Records      []model.CandidateRecord // sorted by score, descending
	Stats        model.DatasetStats
	Dropped      map[model.DropReason]int
	Metrics      *Metrics
	Verification *VerificationReport
}

// New creates a pipeline. A nil normalizer uses the default converter.
func New(opts Options, normalizer *cleaner.Normalizer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("pipeline")
	if normalizer == nil {
		normalizer = cleaner.NewNormalizer(nil, logger)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Pipeline{
		normalizer: normalizer,
		verifier:   NewVerifier(logger),
		logger:     logger,
		workers:    workers,
		chunkSize:  chunkSize,
		verify:     opts.Verify,
	}
}

// Workers returns the goroutine limit used per run
func (p *Pipeline) Workers() int {
	return p.workers
}

// Run scores every row of the job's dataset. Rows that cannot be scored are
// counted in Result.Dropped; Run only fails for a dataset without headers,
// an unknown variant, a cancelled context or a failed verification.
func (p *Pipeline) Run(ctx context.Context, job Job) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, newRunError(job.ID, err)
	}
	if len(job.Dataset.Headers) == 0 {
		return nil, newRunError(job.ID, ErrNoHeaders)
	}

	logger := p.logger.With(zap.String("runID", job.ID))
	metrics := NewMetrics(job.ID, p.workers)

	variant := job.Variant
	if job.InferVariant {
		variant = resolver.InferVariant(job.Dataset.Headers)
		logger.Debug("Inferred source variant", zap.Stringer("variant", variant))
	}
	if !variant.Valid() {
		return nil, newRunError(job.ID, fmt.Errorf("%w: %d", ErrUnknownVariant, int(variant)))
	}

	cols := resolver.Resolve(job.Dataset.Headers)
	logger.Debug("Resolved columns",
		zap.String("dataset", job.Dataset.Name),
		zap.Any("columns", cols.Strings()),
		zap.Int("missing", len(cols.Missing())))

	w := newWorker(p.normalizer, cols, variant, job.Origin)
	outcomes, chunks, err := scoreRows(ctx, w, job.Dataset.Rows, p.workers, p.chunkSize)
	metrics.Chunks = chunks
	if err != nil {
		return nil, newRunError(job.ID, err)
	}

	records := make([]model.CandidateRecord, 0, len(outcomes))
	for _, o := range outcomes {
		metrics.record(o)
		if o.scored() {
			records = append(records, o.record)
		}
	}
	SortRecords(records)

	result := &Result{
		RunID:   job.ID,
		Variant: variant,
		Origin:  job.Origin,
		Columns: cols,
		Records: records,
		Stats:   stats.Summarize(Scores(records)),
		Dropped: metrics.Dropped,
		Metrics: metrics,
	}
	metrics.Complete()

	if p.verify {
		result.Verification = p.verifier.Verify(result)
		if !result.Verification.OK() {
			return result, newRunError(job.ID, fmt.Errorf("%w: %d violations",
				ErrVerificationFailed, len(result.Verification.Violations)))
		}
	}

	metrics.Log(logger)
	return result, nil
}

// Top returns at most n of the highest scoring records. n <= 0 returns all.
func (r *Result) Top(n int) []model.CandidateRecord {
	if n <= 0 || n >= len(r.Records) {
		return r.Records
	}
	return r.Records[:n]
}

// SortRecords orders records by score descending. Equal scores keep their
// encounter order.
func SortRecords(records []model.CandidateRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
}

// Scores returns the score of every record in order
func Scores(records []model.CandidateRecord) []float64 {
	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = r.Score
	}
	return scores
}
