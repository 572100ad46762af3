// Package importer reads tabular uploads such as catalog spreadsheets.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoHeader is returned when the sheet has no header row
var ErrNoHeader = errors.New("importer: sheet has no header row")

// Row maps a normalized header name to the cell under it
type Row map[string]string

// Get returns the first non-empty cell among the given header names
func (r Row) Get(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(r[NormalizeHeader(n)]); v != "" {
			return v
		}
	}
	return ""
}

// NormalizeHeader lowercases a header and drops spaces and punctuation,
// so "Tax %" and "tax_percent" both become "tax" and "taxpercent".
func NormalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ReadSheet reads the first sheet of an .xlsx workbook. The first row is the
// header; fully empty rows are skipped but still count towards row numbers,
// which is why each Row is paired with its 1-based sheet row.
func ReadSheet(r io.Reader) ([]Row, []int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("importer: failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrNoHeader
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("importer: failed to read sheet %s: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return nil, nil, ErrNoHeader
	}

	header := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		header[i] = NormalizeHeader(h)
	}

	var rows []Row
	var numbers []int
	for i, record := range cells[1:] {
		row := Row{}
		empty := true
		for j, v := range record {
			if j >= len(header) || header[j] == "" {
				continue
			}
			v = strings.TrimSpace(v)
			if v != "" {
				empty = false
			}
			row[header[j]] = v
		}
		if empty {
			continue
		}
		rows = append(rows, row)
		numbers = append(numbers, i+2)
	}
	return rows, numbers, nil
}
