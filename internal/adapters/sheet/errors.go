package sheet

import "errors"

var (
	// ErrEmptyTable is returned when the input has no header row.
	ErrEmptyTable = errors.New("table has no header row")
	// ErrUnknownSheet is returned when a named sheet is not in the workbook.
	ErrUnknownSheet = errors.New("sheet not found")
	// ErrUnsupportedFormat is returned for files that are neither csv nor xlsx.
	ErrUnsupportedFormat = errors.New("unsupported table format")
	// ErrReadTable wraps decoder failures.
	ErrReadTable = errors.New("failed to read table")
	// ErrNoColumn is returned when no column looks like it holds Riot IDs.
	ErrNoColumn = errors.New("no Riot ID column found; the table needs a column with values like Nick#TAG")
)
