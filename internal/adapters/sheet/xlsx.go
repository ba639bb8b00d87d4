package sheet

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads one sheet of a workbook: the named one, or the first when
// sheet is empty.
func ReadXLSX(r io.Reader, sheet string) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrReadTable, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	switch {
	case len(sheets) == 0:
		return Table{}, ErrEmptyTable
	case sheet == "":
		sheet = sheets[0]
	case !slices.Contains(sheets, sheet):
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownSheet, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrReadTable, err)
	}
	return newTable(rows)
}
