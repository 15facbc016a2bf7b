package importer

import (
	"errors"
	"testing"
)

func TestParseCSV(t *testing.T) {
	content := []byte("Data;Opis;Kwota;Konto\n" +
		"2025-01-03;\"Zakupy spożywcze\";-123,45;ING\n" +
		";;;\n" +
		"2025-01-04;Wypłata; 5 000,00 ;ING\n")

	doc, err := ParseCSV(content, "operations.csv")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	wantHeaders := []string{"Data", "Opis", "Kwota", "Konto"}
	if len(doc.Headers) != len(wantHeaders) {
		t.Fatalf("expected %d headers, got %d", len(wantHeaders), len(doc.Headers))
	}
	for i, h := range wantHeaders {
		if doc.Headers[i] != h {
			t.Errorf("header %d: expected %q, got %q", i, h, doc.Headers[i])
		}
	}

	// The fully blank line must be stripped.
	if len(doc.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(doc.Rows))
	}
	if got := doc.Rows[0].Get(1); got != "Zakupy spożywcze" {
		t.Errorf("quotes not stripped: got %q", got)
	}
	if got := doc.Rows[1].Get(2); got != "5 000,00" {
		t.Errorf("cell not trimmed: got %q", got)
	}
}

func TestParseCSVStripsBOM(t *testing.T) {
	content := []byte("\ufeffDate;Amount\n2025-01-01;10\n")
	doc, err := ParseCSV(content, "bom.csv")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if doc.Headers[0] != "Date" {
		t.Errorf("BOM not stripped from first header: %q", doc.Headers[0])
	}
}

func TestParseCSVRejections(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		filename string
		want     error
	}{
		{"wrong extension", []byte("a;b\n1;2\n"), "operations.txt", ErrNotCSV},
		{"empty file", nil, "empty.csv", ErrEmptyFile},
		{"whitespace only", []byte("   \n  "), "blank.csv", ErrEmptyFile},
		{"headers only", []byte("Date;Amount\n"), "headers.csv", ErrNoRows},
		{"only blank rows", []byte("Date;Amount\n;\n;\n"), "blanks.csv", ErrNoRows},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCSV(tc.data, tc.filename)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRowGetOutOfRange(t *testing.T) {
	row := Row{"a", "b"}
	if got := row.Get(5); got != "" {
		t.Errorf("expected empty cell, got %q", got)
	}
	if got := row.Get(-1); got != "" {
		t.Errorf("expected empty cell for negative index, got %q", got)
	}
}
