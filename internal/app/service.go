// Package service checks batches of Riot IDs for smurf accounts. It is the
// core used by both the HTTP API and the command line tool.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/smurfwatch/internal/adapters/tracker"
	"github.com/okian/smurfwatch/internal/domain/history"
	"github.com/okian/smurfwatch/internal/domain/profile"
	"github.com/okian/smurfwatch/internal/domain/rank"
	"github.com/okian/smurfwatch/internal/domain/riotid"
	"github.com/okian/smurfwatch/internal/domain/suspicion"
	"github.com/okian/smurfwatch/internal/domain/types"
	"github.com/okian/smurfwatch/pkg/logger"
	"github.com/okian/smurfwatch/pkg/metrics"
)

// Messages shown in the error column.
const (
	msgInvalidID  = "invalid Riot ID (expected Nick#TAG)"
	msgUnexpected = "unexpected error: %v"
)

// ProfileFetcher retrieves one profile document. *tracker.Client implements it.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, id riotid.ID) (profile.Document, error)
}

// ProgressFunc is called after every row with the number of rows done so far.
type ProgressFunc func(done, total int)

// Service evaluates rows one at a time against a single fetcher.
type Service struct {
	fetcher ProfileFetcher
	rules   suspicion.Rules
	acts    int
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRules sets the suspicion thresholds.
func WithRules(rules suspicion.Rules) Option {
	return func(s *Service) {
		s.rules = rules
	}
}

// WithActs sets how many recent acts are considered.
func WithActs(acts int) Option {
	return func(s *Service) {
		if acts > 0 {
			s.acts = acts
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service using fetcher for every lookup.
func New(fetcher ProfileFetcher, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		rules:   suspicion.DefaultRules(),
		acts:    history.DefaultWant,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rules.Acts = s.acts
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// Acts returns the number of recent acts rows are evaluated over.
func (s *Service) Acts() int { return s.acts }

// Report is the result of one batch.
type Report struct {
	BatchID    string            `json:"batch_id"`
	Acts       int               `json:"acts"`
	Total      int               `json:"total"`
	Checked    int               `json:"checked"`
	Failed     int               `json:"failed"`
	Suspicious int               `json:"suspicious"`
	DurationMs int64             `json:"duration_ms"`
	Rows       []types.RowResult `json:"rows"`
}

// CheckAll checks every raw identifier in order. It never stops early: a
// failing row only fills that row's error.
func (s *Service) CheckAll(ctx context.Context, raws []string, progress ProgressFunc) Report {
	start := time.Now()
	rep := Report{
		BatchID: uuid.NewString(),
		Acts:    s.acts,
		Total:   len(raws),
		Rows:    make([]types.RowResult, 0, len(raws)),
	}
	log := s.logger
	log.Info(ctx, "batch started", logger.String("batch_id", rep.BatchID), logger.Int("rows", rep.Total))

	for i, raw := range raws {
		row := s.CheckRow(ctx, raw)
		row.Row = i + 1
		rep.Rows = append(rep.Rows, row)

		switch {
		case row.Outcome.Failed():
			rep.Failed++
		case row.IsSuspicious():
			rep.Checked++
			rep.Suspicious++
		default:
			rep.Checked++
		}
		if progress != nil {
			progress(i+1, rep.Total)
		}
	}

	took := time.Since(start)
	rep.DurationMs = took.Milliseconds()
	metrics.RecordBatch(float64(rep.DurationMs))
	log.Info(ctx, "batch finished",
		logger.String("batch_id", rep.BatchID),
		logger.Int("checked", rep.Checked),
		logger.Int("failed", rep.Failed),
		logger.Int("suspicious", rep.Suspicious),
		logger.Duration("took", took),
	)
	return rep
}

// CheckRow checks a single raw identifier.
func (s *Service) CheckRow(ctx context.Context, raw string) types.RowResult {
	res := s.checkRow(ctx, raw)

	if err := metrics.RecordRow(string(res.Outcome)); err != nil {
		s.logger.Warn(ctx, "failed to record row metric", logger.Error(err))
	}
	if res.IsSuspicious() {
		metrics.RecordSuspicious()
	}

	fields := []logger.Field{
		logger.String("riot_id_raw", raw),
		logger.String("outcome", string(res.Outcome)),
	}
	if res.Outcome.Failed() {
		s.logger.Warn(ctx, "row failed", append(fields, logger.String("error", res.Error))...)
	} else {
		s.logger.Debug(ctx, "row checked", append(fields, logger.Bool("suspicious", res.IsSuspicious()))...)
	}
	return res
}

func (s *Service) checkRow(ctx context.Context, raw string) types.RowResult {
	res := types.RowResult{RiotIDRaw: raw}

	id, ok := riotid.Parse(raw)
	if !ok {
		res.Outcome = types.OutcomeInvalidID
		res.Error = msgInvalidID
		return res
	}
	res.Nick, res.Tag, res.RiotID = id.Nick, id.Tag, id.String()

	doc, err := s.fetcher.FetchProfile(ctx, id)
	if err != nil {
		var apiErr *tracker.APIError
		if errors.As(err, &apiErr) {
			res.Outcome = types.OutcomeLookupFailed
			res.Error = apiErr.Message
		} else {
			res.Outcome = types.OutcomeUnexpected
			res.Error = fmt.Sprintf(msgUnexpected, err)
		}
		return res
	}

	if err := s.evaluate(doc, &res); err != nil {
		res.Outcome = types.OutcomeUnexpected
		res.Error = fmt.Sprintf(msgUnexpected, err)
		return res
	}
	res.Outcome = types.OutcomeChecked
	return res
}

// evaluate fills the verdict fields of res. A panic while walking the document
// is returned as an error.
func (s *Service) evaluate(doc profile.Document, res *types.RowResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	sum := history.Analyze(doc, s.acts)

	res.ActsDetected = history.Names(sum.Acts)
	res.CurrentTier = sum.Current
	res.CurrentRank = rank.Label(sum.Current)
	res.PeakTier = sum.Peak
	res.PeakRank = rank.Label(sum.Peak)

	res.PerAct = make([]types.ActResult, 0, len(sum.PerAct))
	for _, a := range sum.PerAct {
		res.PerAct = append(res.PerAct, types.ActResult{Act: a.Name, Tier: a.Tier, Rank: rank.Label(a.Tier)})
	}

	v := s.rules.Evaluate(sum.Peak, sum.Current)
	res.Suspicious = &v.Suspicious
	res.Reason = v.Reason
	return nil
}
