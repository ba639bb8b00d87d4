package batchcheck

import (
	"context"

	service "github.com/okian/smurfwatch/internal/app"
)

// Config holds one command line run.
type Config struct {
	Input   string // Table to read (.csv or .xlsx)
	Output  string // Result file; empty writes to stdout
	Sheet   string // Workbook sheet; empty means the first one
	Column  string // Exact header of the Riot ID column; empty means auto-detect
	Format  string // csv or json
	Verbose bool   // Debug logging
}

// Checker checks a batch of raw identifiers. *service.Service implements it.
type Checker interface {
	CheckAll(ctx context.Context, raws []string, progress service.ProgressFunc) service.Report
}
