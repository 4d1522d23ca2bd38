package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

func TestInferVariant(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    model.SourceVariant
	}{
		{"kepler magnitude", []string{"kepid", "period", "KepMag"}, model.VariantKepler},
		{"koi prefix", []string{"KOI_PERIOD", "depth"}, model.VariantKepler},
		{"tess magnitude", []string{"tic", "st_tmag"}, model.VariantTESS},
		{"toi id", []string{"TOI", "period", "depth"}, model.VariantTESS},
		{"kepler wins over tess", []string{"toi", "koi_depth"}, model.VariantKepler},
		{"generic", []string{"name", "period", "duration", "depth", "mag"}, model.VariantGeneric},
		{"empty", nil, model.VariantGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferVariant(tt.headers))
		})
	}
}
