// pkg/model/variant.go
package model

import (
	"fmt"
	"strings"
)

// SourceVariant identifies the survey catalog a dataset was produced by.
// Unit corrections, magnitude scaling and ID prefixes all dispatch on it.
type SourceVariant int

const (
	// VariantGeneric is an uploaded table of unknown provenance
	VariantGeneric SourceVariant = iota
	// VariantTESS is the TESS Objects of Interest catalog (TOI)
	VariantTESS
	// VariantKepler is the Kepler Objects of Interest cumulative catalog (KOI)
	VariantKepler
)

// Variants lists every known source variant
var Variants = []SourceVariant{VariantTESS, VariantKepler, VariantGeneric}

// String returns the short catalog code used on the command line and in logs
func (v SourceVariant) String() string {
	switch v {
	case VariantTESS:
		return "toi"
	case VariantKepler:
		return "koi"
	case VariantGeneric:
		return "file"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// Valid reports whether v is one of the declared variants
func (v SourceVariant) Valid() bool {
	switch v {
	case VariantTESS, VariantKepler, VariantGeneric:
		return true
	}
	return false
}

// ParseVariant maps a catalog code (toi, koi, file, or the survey names) to a variant
func ParseVariant(s string) (SourceVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toi", "tess":
		return VariantTESS, nil
	case "koi", "kepler":
		return VariantKepler, nil
	case "file", "generic", "":
		return VariantGeneric, nil
	default:
		return VariantGeneric, fmt.Errorf("unknown source variant %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (v SourceVariant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("cannot marshal source variant %d", int(v))
	}
	return []byte(v.String()), nil
}

// Origin describes how a dataset reached the pipeline. It only affects how
// candidate IDs are prefixed.
type Origin int

const (
	// OriginArchive is a remote archive query result
	OriginArchive Origin = iota
	// OriginFile is an uploaded or local file
	OriginFile
	// OriginSQL is a query against a catalog database
	OriginSQL
	// OriginManual is a single hand-entered candidate
	OriginManual
)

// String returns the origin name
func (o Origin) String() string {
	switch o {
	case OriginArchive:
		return "archive"
	case OriginFile:
		return "file"
	case OriginSQL:
		return "sql"
	case OriginManual:
		return "manual"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}
