// Package batchcheck runs a spreadsheet through the checker from the command
// line.
package batchcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/smurfwatch/internal/adapters/sheet"
	service "github.com/okian/smurfwatch/internal/app"
	"github.com/okian/smurfwatch/pkg/logger"
)

const (
	directoryPermission = 0750
	percentMultiplier   = 100
)

// Run reads cfg.Input, checks its Riot ID column with checker and writes the
// result. progress receives a running counter; nil disables it. The returned
// error only covers the run itself: unreadable input, no identifier column or
// an unwritable result.
func Run(ctx context.Context, cfg *Config, checker Checker, stdout, progress io.Writer) (service.Report, error) {
	format := sheet.Format(cfg.Format)
	switch format {
	case "":
		format = sheet.FormatCSV
	case sheet.FormatCSV, sheet.FormatJSON:
	default:
		return service.Report{}, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}

	raws, err := readIdentifiers(ctx, cfg)
	if err != nil {
		return service.Report{}, err
	}

	rep := checker.CheckAll(ctx, raws, progressPrinter(progress))
	if progress != nil {
		_, _ = fmt.Fprintln(progress)
	}

	if err := writeResult(ctx, cfg, format, rep, stdout); err != nil {
		return rep, err
	}
	displayFinalStats(ctx, rep)
	return rep, nil
}

// readIdentifiers loads the table and returns its Riot ID column.
func readIdentifiers(ctx context.Context, cfg *Config) ([]string, error) {
	if cfg.Input == "" {
		return nil, ErrNoInput
	}
	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenInput, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Get().Warn(ctx, "failed to close input", logger.Error(err))
		}
	}()

	table, err := sheet.Read(ctx, cfg.Input, f, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	col, err := sheet.DetectColumn(table, cfg.Column)
	if err != nil {
		return nil, err
	}
	logger.Get().Info(ctx, "input loaded",
		logger.String("file", cfg.Input),
		logger.String("column", table.Header[col]),
		logger.Int("rows", len(table.Rows)))
	return table.Values(col), nil
}

// progressPrinter renders "checked n/total" on a single terminal line.
func progressPrinter(w io.Writer) service.ProgressFunc {
	if w == nil {
		return nil
	}
	return func(done, total int) {
		_, _ = fmt.Fprintf(w, "\rchecked %d/%d", done, total)
	}
}

// writeResult writes rep to cfg.Output, or to stdout when no file is named.
func writeResult(ctx context.Context, cfg *Config, format sheet.Format, rep service.Report, stdout io.Writer) error {
	w := stdout
	if cfg.Output != "" {
		if dir := filepath.Dir(cfg.Output); dir != "." {
			if err := os.MkdirAll(dir, directoryPermission); err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}
		}
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Get().Error(ctx, "failed to close result file", logger.Error(err))
			}
		}()
		w = f
	}

	var err error
	if format == sheet.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(rep)
	} else {
		err = sheet.WriteCSV(w, rep.Rows, rep.Acts)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if cfg.Output != "" {
		logger.Get().Info(ctx, "result saved", logger.String("file", cfg.Output))
	}
	return nil
}

// displayFinalStats logs the batch summary.
func displayFinalStats(ctx context.Context, rep service.Report) {
	var suspiciousRate float64
	if rep.Checked > 0 {
		suspiciousRate = float64(rep.Suspicious) / float64(rep.Checked) * percentMultiplier
	}
	logger.Get().Info(ctx, "final statistics",
		logger.String("batch_id", rep.BatchID),
		logger.Int("total", rep.Total),
		logger.Int("checked", rep.Checked),
		logger.Int("failed", rep.Failed),
		logger.Int("suspicious", rep.Suspicious),
		logger.Float64("suspiciousRate", suspiciousRate),
		logger.Int("durationMs", int(rep.DurationMs)))
}
