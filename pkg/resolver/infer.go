package resolver

import (
	"strings"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

// Header fragments that identify a catalog. Kepler is checked first because
// KOI tables may also carry TESS-style magnitude columns.
var (
	keplerTokens = []string{"kepmag", "koi_"}
	tessTokens   = []string{"tmag", "toi"}
)

// InferVariant guesses the source catalog of an uploaded table from its headers
func InferVariant(headers []string) model.SourceVariant {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(h)
	}

	switch {
	case anyContains(lower, keplerTokens):
		return model.VariantKepler
	case anyContains(lower, tessTokens):
		return model.VariantTESS
	default:
		return model.VariantGeneric
	}
}

func anyContains(headers []string, tokens []string) bool {
	for _, h := range headers {
		for _, tok := range tokens {
			if strings.Contains(h, tok) {
				return true
			}
		}
	}
	return false
}
