// Package resolver maps the headers of an arbitrary catalog table onto the
// canonical candidate fields.
package resolver

import (
	"strings"

	"golang.org/x/text/cases"
)

// Field is a canonical candidate field
type Field string

const (
	FieldID       Field = "id"
	FieldPeriod   Field = "period"
	FieldDuration Field = "duration"
	FieldDepth    Field = "depth"
	FieldStarMag  Field = "star_mag"
)

// Fields lists every canonical field in resolution order
var Fields = []Field{FieldID, FieldPeriod, FieldDuration, FieldDepth, FieldStarMag}

// RequiredFields are the fields a row needs to be scored
var RequiredFields = []Field{FieldPeriod, FieldDuration, FieldDepth, FieldStarMag}

// aliases holds the lowercase header names accepted for each field, highest priority first
var aliases = map[Field][]string{
	FieldID:       {"kepid", "koi", "koi_name", "toi", "tic", "pl_name", "id", "object", "name", "hostname", "tid"},
	FieldPeriod:   {"orbper", "period", "pl_orbper", "orbital_period", "per", "koi_period"},
	FieldDuration: {"trandur", "pl_trandur", "duration", "transit_duration", "t_dur", "pl_trandurh", "koi_duration"},
	FieldDepth:    {"trandept", "pl_trandep", "depth", "transit_depth", "ppm", "koi_depth"},
	FieldStarMag:  {"tmag", "st_tmag", "tic_tmag", "kepmag", "koi_kepmag", "mag", "t_mag", "sy_tmag", "st_mag"},
}

// Aliases returns a copy of the alias list for a field
func Aliases(f Field) []string {
	src := aliases[f]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// ColumnMap maps canonical fields to the dataset's actual header strings.
// Fields with no matching header are absent.
type ColumnMap map[Field]string

// Column returns the header resolved for f
func (m ColumnMap) Column(f Field) (string, bool) {
	col, ok := m[f]
	return col, ok
}

// Missing returns the required fields that did not resolve
func (m ColumnMap) Missing() []Field {
	var missing []Field
	for _, f := range RequiredFields {
		if _, ok := m[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every required field resolved
func (m ColumnMap) Complete() bool {
	return len(m.Missing()) == 0
}

// Strings returns the map keyed by field name, for logging
func (m ColumnMap) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for f, col := range m {
		out[string(f)] = col
	}
	return out
}

// Resolve determines which header holds each canonical field. Matching is
// case-insensitive; for each field the first alias present wins.
func Resolve(headers []string) ColumnMap {
	index := newHeaderIndex(headers)

	cols := make(ColumnMap, len(Fields))
	for _, f := range Fields {
		for _, alias := range aliases[f] {
			if header, ok := index.lookup(alias); ok {
				cols[f] = header
				break
			}
		}
	}
	return cols
}

// headerIndex is a case-folded view of a header list, built once per dataset
type headerIndex struct {
	fold   cases.Caser
	byName map[string]string
}

func newHeaderIndex(headers []string) *headerIndex {
	idx := &headerIndex{
		fold:   cases.Fold(),
		byName: make(map[string]string, len(headers)),
	}
	for _, h := range headers {
		// Later duplicates replace earlier ones
		idx.byName[idx.key(h)] = h
	}
	return idx
}

func (idx *headerIndex) key(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return idx.fold.String(strings.TrimSpace(name))
}

func (idx *headerIndex) lookup(alias string) (string, bool) {
	h, ok := idx.byName[idx.key(alias)]
	return h, ok
}
