package batchcheck

import "errors"

// Sentinel kinds for a failed run. Row failures are never returned as errors.
var (
	ErrNoInput       = errors.New("no input table given; use -in")
	ErrOpenInput     = errors.New("cannot open input table")
	ErrUnknownFormat = errors.New("unknown output format")
	ErrWriteOutput   = errors.New("cannot write result")
)
