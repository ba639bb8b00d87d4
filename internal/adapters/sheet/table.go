// Package sheet reads player tables from CSV or XLSX, finds the Riot ID column
// and writes result tables.
package sheet

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format of an inbound or outbound table.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// Table is a header row plus data rows. Rows may be shorter than Header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the value at row, col or "" when the row is short.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Values returns column col of every data row.
func (t Table) Values(col int) []string {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, col)
	}
	return out
}

// FormatOf picks the inbound format from a file name. Names without a known
// extension are read as CSV.
func FormatOf(name string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt", "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Read decodes r according to the extension of name. sheet selects a workbook
// sheet and is ignored for CSV.
func Read(ctx context.Context, name string, r io.Reader, sheet string) (Table, error) {
	format, err := FormatOf(name)
	if err != nil {
		return Table{}, err
	}
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}
	if format == FormatXLSX {
		return ReadXLSX(r, sheet)
	}
	return ReadCSV(r)
}

// newTable splits records into header and data, dropping blank data rows.
func newTable(records [][]string) (Table, error) {
	if len(records) == 0 {
		return Table{}, ErrEmptyTable
	}
	header := make([]string, len(records[0]))
	copy(header, records[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := Table{Header: header}
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
