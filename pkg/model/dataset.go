// pkg/model/dataset.go
package model

// RawRow is a single row of a tabular dataset keyed by its header string.
// Values are whatever the decoder produced: strings for text formats,
// driver types for SQL sources, nil for missing cells.
type RawRow map[string]any

// Dataset is a materialized table handed to the pipeline by an I/O layer
type Dataset struct {
	Name    string   // Human readable name (file name, table, archive query)
	Headers []string // Column headers in their natural case and order
	Rows    []RawRow // Data rows in encounter order
}

// Len returns the number of data rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}
