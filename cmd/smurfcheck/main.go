package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/smurfwatch/internal/app"
	"github.com/okian/smurfwatch/internal/batchcheck"
	"github.com/okian/smurfwatch/internal/config"
	"github.com/okian/smurfwatch/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("smurfcheck", flag.ContinueOnError)
	var (
		input      = fs.String("in", "", "Input table (.csv or .xlsx)")
		output     = fs.String("out", "", "Result file (default: stdout)")
		format     = fs.String("format", "csv", "Result format: csv or json")
		column     = fs.String("column", "", "Exact header of the Riot ID column (default: auto-detect)")
		sheetName  = fs.String("sheet", "", "Workbook sheet to read (default: first sheet)")
		apiKey     = fs.String("key", "", "TRN-Api-Key (default: from config)")
		minPeak    = fs.Int("min-peak", 0, "Minimum peak tier to be suspicious")
		maxCurrent = fs.Int("max-current", 0, "Maximum current tier to be suspicious")
		minGap     = fs.Int("min-gap", 0, "Minimum peak minus current gap to be suspicious")
		acts       = fs.Int("acts", 0, "Number of recent acts to examine")
		verbose    = fs.Bool("verbose", false, "Enable debug logging")
		help       = fs.Bool("help", false, "Show help")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *help {
		batchcheck.ShowHelp()
		return 0
	}

	if err := batchcheck.SetupLogging(os.Stderr, *verbose); err != nil {
		os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}
	if !*verbose {
		if err := logger.SetLevelString(cfg.LogLevel); err != nil {
			_ = logger.SetLevelString("info")
		}
	}

	// Only flags given on the command line override the configuration.
	overrides := app.Overrides{APIKey: *apiKey}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-peak":
			overrides.MinPeakTier = minPeak
		case "max-current":
			overrides.MaxCurrentTier = maxCurrent
		case "min-gap":
			overrides.MinGap = minGap
		case "acts":
			overrides.Acts = acts
		}
	})

	svc, err := app.NewBuilder(cfg, logger.Named("service")).Build(overrides)
	if err != nil {
		os.Stderr.WriteString("smurfcheck: " + err.Error() + "\n")
		return 1
	}

	if *column == "" {
		*column = cfg.RiotIDColumn
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runCfg := &batchcheck.Config{
		Input:   *input,
		Output:  *output,
		Sheet:   *sheetName,
		Column:  *column,
		Format:  *format,
		Verbose: *verbose,
	}
	if _, err := batchcheck.Run(ctx, runCfg, svc, os.Stdout, os.Stderr); err != nil {
		os.Stderr.WriteString("smurfcheck: " + err.Error() + "\n")
		return 1
	}
	return 0
}
