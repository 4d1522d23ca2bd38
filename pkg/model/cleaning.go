// pkg/model/cleaning.go
package model

// DropReason explains why a row produced no candidate record.
// DropNone means the row was scored.
type DropReason int

const (
	DropNone DropReason = iota
	// DropMissingColumn means a required field has no resolved column
	DropMissingColumn
	// DropUnparseable means a required cell was blank, a NaN sentinel or not numeric
	DropUnparseable
	// DropNonPositive means period, duration or depth was zero or negative
	DropNonPositive
	// DropInvalidMagnitude means the magnitude could not be mapped to [0,1]
	DropInvalidMagnitude
)

// DropReasons lists every reason a row can be dropped
var DropReasons = []DropReason{
	DropMissingColumn,
	DropUnparseable,
	DropNonPositive,
	DropInvalidMagnitude,
}

// String returns the reason as a snake_case token for logs and reports
func (r DropReason) String() string {
	switch r {
	case DropNone:
		return "none"
	case DropMissingColumn:
		return "missing_column"
	case DropUnparseable:
		return "unparseable_value"
	case DropNonPositive:
		return "non_positive_value"
	case DropInvalidMagnitude:
		return "invalid_magnitude"
	default:
		return "unknown"
	}
}

// Correction records a unit conversion applied to a field during normalization
type Correction struct {
	Field         string  // Canonical field that was corrected
	OriginalValue float64 // Value as parsed from the row
	NewValue      float64 // Value after the correction
	Operation     string  // Conversion performed (e.g. "days_to_hours")
}
