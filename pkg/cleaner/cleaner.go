// pkg/cleaner/cleaner.go
package cleaner

import (
	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/converter"
	"github.com/David-Botos/transit-ingress/pkg/model"
	"github.com/David-Botos/transit-ingress/pkg/resolver"
)

// Fields are the canonical, unit-corrected values extracted from one row
type Fields struct {
	Period        float64 // days
	Duration      float64 // hours
	Depth         float64 // ppm
	StarMag       float64 // magnitude as provided
	NormalizedMag float64 // brightness mapped to [0,1]
	Corrections   []model.Correction
}

// Normalizer extracts and validates the scoring fields of catalog rows.
// It holds no per-row state and is safe for concurrent use.
type Normalizer struct {
	converter *converter.TypeConverter
	logger    *zap.Logger
}

// NewNormalizer creates a Normalizer. A nil converter uses the default configuration.
func NewNormalizer(conv *converter.TypeConverter, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conv == nil {
		conv = converter.NewTypeConverter(logger)
	}
	return &Normalizer{
		converter: conv,
		logger:    logger,
	}
}

// Normalize extracts period, duration, depth and magnitude from row using the
// resolved columns, applies the variant's unit corrections and maps the
// magnitude to [0,1]. A row that cannot be scored yields a non-zero DropReason.
func (n *Normalizer) Normalize(
	row model.RawRow,
	cols resolver.ColumnMap,
	variant model.SourceVariant,
) (Fields, model.DropReason) {
	var raw [4]float64
	for i, field := range resolver.RequiredFields {
		col, ok := cols.Column(field)
		if !ok {
			return Fields{}, model.DropMissingColumn
		}
		v, ok := n.converter.Float(row[col])
		if !ok {
			return Fields{}, model.DropUnparseable
		}
		raw[i] = v
	}
	period, duration, depth, starMag := raw[0], raw[1], raw[2], raw[3]

	if period <= 0 || duration <= 0 || depth <= 0 {
		return Fields{}, model.DropNonPositive
	}

	duration, depth, corrections := applyUnitCorrections(variant, duration, depth)

	normMag, ok := NormalizeMagnitude(starMag, variant)
	if !ok {
		return Fields{}, model.DropInvalidMagnitude
	}

	return Fields{
		Period:        period,
		Duration:      duration,
		Depth:         depth,
		StarMag:       starMag,
		NormalizedMag: normMag,
		Corrections:   corrections,
	}, model.DropNone
}

// Converter returns the value converter used by the normalizer
func (n *Normalizer) Converter() *converter.TypeConverter {
	return n.converter
}
