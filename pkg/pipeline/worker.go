package pipeline

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/David-Botos/transit-ingress/pkg/cleaner"
	"github.com/David-Botos/transit-ingress/pkg/converter"
	"github.com/David-Botos/transit-ingress/pkg/model"
	"github.com/David-Botos/transit-ingress/pkg/resolver"
	"github.com/David-Botos/transit-ingress/pkg/scoring"
)

// rowOutcome is the result of scoring one row: a record or a drop reason
type rowOutcome struct {
	record      model.CandidateRecord
	reason      model.DropReason
	corrections int
}

func (o rowOutcome) scored() bool {
	return o.reason == model.DropNone
}

// chunk is a half-open range of row indexes handled as one unit of work
type chunk struct {
	start, end int
}

func chunkRanges(n, size int) []chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	chunks := make([]chunk, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, chunk{start: start, end: end})
	}
	return chunks
}

// worker scores rows of a single dataset. It is read-only after construction
// and shared by every goroutine of a run.
type worker struct {
	normalizer *cleaner.Normalizer
	converter  *converter.TypeConverter
	cols       resolver.ColumnMap
	variant    model.SourceVariant
	prefix     string
}

func newWorker(n *cleaner.Normalizer, cols resolver.ColumnMap, variant model.SourceVariant, origin model.Origin) *worker {
	return &worker{
		normalizer: n,
		converter:  n.Converter(),
		cols:       cols,
		variant:    variant,
		prefix:     IDPrefix(variant, origin),
	}
}

// processChunk scores rows[c.start:c.end] into out at the same indexes
func (w *worker) processChunk(rows []model.RawRow, c chunk, out []rowOutcome) {
	for i := c.start; i < c.end; i++ {
		out[i] = w.processRow(rows[i], i+1)
	}
}

// processRow scores a single row. ordinal is the 1-based position in the dataset.
func (w *worker) processRow(row model.RawRow, ordinal int) rowOutcome {
	fields, reason := w.normalizer.Normalize(row, w.cols, w.variant)
	if reason != model.DropNone {
		return rowOutcome{reason: reason}
	}

	score := scoring.Score(fields.Period, fields.Duration, fields.Depth, fields.NormalizedMag)

	return rowOutcome{
		record: model.CandidateRecord{
			ID:       w.recordID(row, ordinal),
			Period:   converter.Round(fields.Period, 2),
			Duration: converter.Round(fields.Duration, 2),
			Depth:    converter.Round(fields.Depth, 0),
			StarMag:  converter.Round(fields.StarMag, 2),
			Score:    converter.Round(score, 1),
			Label:    scoring.Classify(score),
		},
		corrections: len(fields.Corrections),
	}
}

func (w *worker) recordID(row model.RawRow, ordinal int) string {
	if col, ok := w.cols.Column(resolver.FieldID); ok {
		if raw := w.converter.Text(row[col]); raw != "" {
			if w.prefix == "" {
				return raw
			}
			return w.prefix + "-" + raw
		}
	}
	return "ROW-" + strconv.Itoa(ordinal)
}

// scoreRows maps every row through w on a bounded pool of goroutines. Each
// chunk writes only its own slots, so the returned slice is in dataset order
// whatever the pool size. The context is checked between chunks.
func scoreRows(ctx context.Context, w *worker, rows []model.RawRow, workers, chunkSize int) ([]rowOutcome, int, error) {
	out := make([]rowOutcome, len(rows))
	chunks := chunkRanges(len(rows), chunkSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, c := range chunks {
		if err := gctx.Err(); err != nil {
			break
		}
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w.processChunk(rows, c, out)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, len(chunks), err
	}
	// Wait only reports goroutine errors; a cancellation that stopped
	// submission early still has to surface.
	if err := ctx.Err(); err != nil {
		return nil, len(chunks), err
	}
	return out, len(chunks), nil
}
