package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readDelimited reads archive-style delimited text: lines starting with '#'
// are comments, blank lines are skipped and rows may be ragged
func readDelimited(r io.Reader, delim rune) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited text: %w", err)
	}
	return records, nil
}
