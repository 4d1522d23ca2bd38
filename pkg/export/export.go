// Package export writes scored candidate records as CSV, JSON or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

// ErrNoRecords is returned when there is nothing to export
var ErrNoRecords = errors.New("no records to export")

// SheetName is the worksheet written to XLSX exports
const SheetName = "Results"

// Columns is the column order of tabular exports
var Columns = []string{"id", "period", "duration", "depth", "star_mag", "score", "label"}

// Envelope is the JSON document shape: records plus dataset statistics
type Envelope struct {
	Data  []model.CandidateRecord `json:"data"`
	Stats model.DatasetStats      `json:"stats"`
}

// DefaultFileName returns the timestamped XLSX export name for now
func DefaultFileName(now time.Time) string {
	return "exoplanet_results_" + now.Format("20060102_150405") + ".xlsx"
}

func cells(r model.CandidateRecord) []string {
	return []string{
		r.ID,
		formatFloat(r.Period),
		formatFloat(r.Duration),
		formatFloat(r.Depth),
		formatFloat(r.StarMag),
		formatFloat(r.Score),
		r.Label.String(),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteCSV writes records with a header row
func WriteCSV(w io.Writer, records []model.CandidateRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(cells(r)); err != nil {
			return fmt.Errorf("failed to write CSV record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the records and stats envelope
func WriteJSON(w io.Writer, records []model.CandidateRecord, stats model.DatasetStats) error {
	if records == nil {
		records = []model.CandidateRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Envelope{Data: records, Stats: stats}); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteXLSX writes records to a single Results sheet. Numeric columns are
// stored as numbers.
func WriteXLSX(w io.Writer, records []model.CandidateRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.ID, r.Period, r.Duration, r.Depth, r.StarMag, r.Score, r.Label.String()}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile writes records to path, choosing the writer from its extension
// (.xlsx, .csv or .json)
func WriteFile(path string, records []model.CandidateRecord, stats model.DatasetStats) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".csv", ".json":
	default:
		return fmt.Errorf("unsupported export extension %q", ext)
	}
	if ext == ".xlsx" && len(records) == 0 {
		return ErrNoRecords
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	switch ext {
	case ".xlsx":
		return WriteXLSX(f, records)
	case ".csv":
		return WriteCSV(f, records)
	default:
		return WriteJSON(f, records, stats)
	}
}
