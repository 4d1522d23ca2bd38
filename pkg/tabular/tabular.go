// Package tabular decodes uploaded catalog files (CSV, TSV, XLSX and HTML
// tables) into datasets.
package tabular

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/David-Botos/transit-ingress/pkg/model"
)

var (
	// ErrUnsupportedFormat is returned for file types that cannot be decoded
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrEmptyDataset is returned when the input has no header row
	ErrEmptyDataset = errors.New("empty dataset")
)

// Format is a tabular encoding
type Format int

const (
	FormatCSV Format = iota
	FormatTSV
	FormatXLSX
	FormatHTML
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatXLSX:
		return "xlsx"
	case FormatHTML:
		return "html"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks a format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DecodeFile decodes the file at path using its extension. The dataset is
// named after the file.
func DecodeFile(path string) (model.Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return model.Dataset{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Decode(f, format)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	ds.Name = filepath.Base(path)
	return ds, nil
}

// Decode reads a dataset in the given format from r
func Decode(r io.Reader, format Format) (model.Dataset, error) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = readDelimited(r, ',')
	case FormatTSV:
		records, err = readDelimited(r, '\t')
	case FormatXLSX:
		records, err = readWorkbook(r)
	case FormatHTML:
		records, err = readHTMLTable(r)
	default:
		return model.Dataset{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return model.Dataset{}, err
	}
	return fromRecords(records)
}

// fromRecords turns the first non-blank record into headers and the rest into
// rows. Short rows leave the trailing columns absent and extra cells are
// ignored.
func fromRecords(records [][]string) (model.Dataset, error) {
	for len(records) > 0 && blank(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return model.Dataset{}, ErrEmptyDataset
	}

	headers := uniqueHeaders(records[0])
	rows := make([]model.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		row := make(model.RawRow, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	return model.Dataset{Headers: headers, Rows: rows}, nil
}

// uniqueHeaders trims header cells, names empty ones "Unnamed: i" and
// suffixes repeats with ".1", ".2", ... so every column keeps its own key
func uniqueHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	taken := make(map[string]bool, len(raw))
	repeats := make(map[string]int)
	for i, h := range raw {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for taken[name] {
			repeats[h]++
			name = h + "." + strconv.Itoa(repeats[h])
		}
		taken[name] = true
		headers[i] = name
	}
	return headers
}

func blank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
