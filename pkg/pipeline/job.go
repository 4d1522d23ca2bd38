package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

// Job represents one scoring run over a materialized dataset
type Job struct {
	ID           string              // Unique run identifier
	Dataset      model.Dataset       // Rows to score
	Variant      model.SourceVariant // Declared catalog variant
	Origin       model.Origin        // Where the rows came from
	InferVariant bool                // Derive the variant from the headers instead
	CreatedAt    time.Time
}

// NewJob creates a job for a dataset with a declared variant
func NewJob(ds model.Dataset, variant model.SourceVariant, origin model.Origin) Job {
	return Job{
		ID:        uuid.New().String(),
		Dataset:   ds,
		Variant:   variant,
		Origin:    origin,
		CreatedAt: time.Now(),
	}
}

// WithInferredVariant marks the job so the variant is inferred from headers
// and returns the modified job
func (j Job) WithInferredVariant() Job {
	j.InferVariant = true
	return j
}

// WithID overrides the generated run identifier and returns the modified job
func (j Job) WithID(id string) Job {
	j.ID = id
	return j
}

// IDPrefix returns the candidate ID prefix for a variant and origin. Uploaded
// files are always FILE regardless of the inferred variant. Generic rows from
// any other origin keep their raw id.
func IDPrefix(variant model.SourceVariant, origin model.Origin) string {
	if origin == model.OriginFile {
		return "FILE"
	}
	switch variant {
	case model.VariantTESS:
		return "TOI"
	case model.VariantKepler:
		return "KOI"
	default:
		return ""
	}
}
