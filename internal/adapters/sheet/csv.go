package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV reads a comma separated table. Records may have differing lengths.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrReadTable, err)
	}
	return newTable(records)
}
