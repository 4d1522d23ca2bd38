package scoring

import (
	"errors"
	"fmt"

	"github.com/David-Botos/transit-ingress/pkg/cleaner"
	"github.com/David-Botos/transit-ingress/pkg/converter"
	"github.com/David-Botos/transit-ingress/pkg/model"
	"github.com/David-Botos/transit-ingress/pkg/resolver"
)

// ErrInvalidInput is returned when a hand-entered candidate cannot be scored
var ErrInvalidInput = errors.New("invalid input")

// Input is a single candidate entered by hand, in the catalog's native units
type Input struct {
	Period   float64 `json:"period"`
	Duration float64 `json:"duration"`
	Depth    float64 `json:"depth"`
	StarMag  float64 `json:"star_mag"`
}

// Evaluation is the scored result for an Input. Field values echo the input.
type Evaluation struct {
	Score      float64     `json:"score"`
	Label      model.Label `json:"label"`
	Period     float64     `json:"period"`
	Duration   float64     `json:"duration"`
	Depth      float64     `json:"depth"`
	StarMag    float64     `json:"star_mag"`
	Components Components  `json:"-"`
}

var manualColumns = resolver.ColumnMap{
	resolver.FieldPeriod:   string(resolver.FieldPeriod),
	resolver.FieldDuration: string(resolver.FieldDuration),
	resolver.FieldDepth:    string(resolver.FieldDepth),
	resolver.FieldStarMag:  string(resolver.FieldStarMag),
}

// Evaluate scores one candidate through the same normalization as catalog
// rows, so Kepler unit corrections apply
func Evaluate(in Input, variant model.SourceVariant) (Evaluation, error) {
	row := model.RawRow{
		string(resolver.FieldPeriod):   in.Period,
		string(resolver.FieldDuration): in.Duration,
		string(resolver.FieldDepth):    in.Depth,
		string(resolver.FieldStarMag):  in.StarMag,
	}

	fields, reason := cleaner.NewNormalizer(nil, nil).Normalize(row, manualColumns, variant)
	if reason != model.DropNone {
		return Evaluation{}, fmt.Errorf("%w: %s", ErrInvalidInput, reason)
	}

	parts := Breakdown(fields.Period, fields.Duration, fields.Depth, fields.NormalizedMag)
	score := parts.Total()

	return Evaluation{
		Score:      converter.Round(score, 1),
		Label:      Classify(score),
		Period:     converter.Round(in.Period, 2),
		Duration:   converter.Round(in.Duration, 2),
		Depth:      converter.Round(in.Depth, 1),
		StarMag:    converter.Round(in.StarMag, 2),
		Components: parts,
	}, nil
}
