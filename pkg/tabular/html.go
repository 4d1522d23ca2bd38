package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// readHTMLTable reads the first table on the page that has a header row: a
// row of th cells, or a first row followed by data. Single-row layout tables
// are skipped.
func readHTMLTable(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var records [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		records = tableRecords(table)
		return len(records) == 0
	})

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return records, nil
}

func tableRecords(table *goquery.Selection) [][]string {
	var (
		records   [][]string
		hasHeader bool
	)
	// Nested tables belong to their own cells
	table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	}).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("th, td")
		if cells.Length() == 0 {
			return
		}
		if cells.Is("th") {
			hasHeader = true
		}
		rec := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			rec = append(rec, strings.Join(strings.Fields(cell.Text()), " "))
		})
		records = append(records, rec)
	})
	if !hasHeader && len(records) < 2 {
		return nil
	}
	return records
}
