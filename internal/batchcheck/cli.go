package batchcheck

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/smurfwatch/pkg/logger"
)

// SetupLogging sends logs to w, at debug level when verbose.
func SetupLogging(w io.Writer, verbose bool) error {
	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for smurfcheck.
func ShowHelp() {
	os.Stdout.WriteString(`smurfcheck
==========

Checks every Riot ID of a spreadsheet against the Tracker Network API and
flags accounts whose recent peak rank is far above their current rank.

Usage:
  smurfcheck -in players.xlsx [options]

Options:
  -in string
        Input table, .csv or .xlsx, first row is the header (required)
  -out string
        Result file (default: stdout)
  -format string
        Result format: csv or json (default "csv")
  -column string
        Exact header of the Riot ID column (default: auto-detect)
  -sheet string
        Workbook sheet to read (default: first sheet)
  -key string
        TRN-Api-Key (default: SMURF_API_KEY or api_key from config)
  -min-peak int
        Minimum peak tier over the last acts to be suspicious (default 18)
  -max-current int
        Maximum current tier to be suspicious (default 12)
  -min-gap int
        Minimum peak minus current gap to be suspicious (default 6)
  -acts int
        Number of recent acts to examine (default 3)
  -verbose
        Enable debug logging
  -help
        Show this help message

Configuration is read from .env, the YAML file named by SMURF_CONFIG and
SMURF_* variables; flags win over all of them. Rows that fail are reported
in the error column and never change the exit code.

Examples:
  smurfcheck -in players.xlsx -out result.csv
  smurfcheck -in players.csv -format json -min-gap 8 -key $TRN_KEY
`)
}
