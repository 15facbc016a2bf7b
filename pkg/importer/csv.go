package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrNotCSV    = errors.New("file does not have a .csv extension")
	ErrEmptyFile = errors.New("file is empty")
	ErrNoRows    = errors.New("file contains no data rows")
)

// Row is one source line, ordered the same way as Document.Headers.
type Row []string

// Get returns the cell at index i, or "" when the row is shorter.
func (r Row) Get(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Document is the parsed statement: header names plus raw rows. It is a
// transient structure, discarded when the import session closes.
type Document struct {
	Headers []string
	Rows    []Row
}

// ParseCSV reads raw file bytes as a semicolon-delimited, UTF-8 CSV whose
// first row is the header. Cells are trimmed and stripped of one pair of
// surrounding quotes. Fully blank rows are dropped; a file that ends up
// with zero data rows is rejected.
func ParseCSV(data []byte, filename string) (*Document, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, ErrNotCSV
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = normalizeCell(h)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	doc := &Document{Headers: headers}
	for _, rec := range records[1:] {
		row := make(Row, len(rec))
		blank := true
		for i, cell := range rec {
			row[i] = normalizeCell(cell)
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		doc.Rows = append(doc.Rows, row)
	}
	if len(doc.Rows) == 0 {
		return nil, ErrNoRows
	}
	return doc, nil
}

// normalizeCell trims whitespace and strips a single pair of surrounding
// quote characters.
func normalizeCell(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
