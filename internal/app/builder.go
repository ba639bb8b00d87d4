package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/smurfwatch/internal/adapters/tracker"
	"github.com/okian/smurfwatch/internal/config"
	"github.com/okian/smurfwatch/internal/domain/suspicion"
	"github.com/okian/smurfwatch/pkg/logger"
)

// ErrMissingAPIKey is returned by Build when no tracker key is available.
var ErrMissingAPIKey = errors.New("no TRN-Api-Key configured; set SMURF_API_KEY or send a TRN-Api-Key header")

// Overrides replace configured values for one batch. Nil fields and an empty
// APIKey keep the configured value.
type Overrides struct {
	APIKey         string
	MinPeakTier    *int
	MaxCurrentTier *int
	MinGap         *int
	Acts           *int
}

// Builder creates Services from configuration. Batches using the configured
// key share one tracker client, and so one throttle; a batch with its own key
// gets a client of its own.
type Builder struct {
	cfg    *config.Config
	shared *tracker.Client
	logger logger.Logger
}

// NewBuilder creates a Builder for cfg.
func NewBuilder(cfg *config.Config, l logger.Logger) *Builder {
	if l == nil {
		l = logger.Named("service")
	}
	b := &Builder{cfg: cfg, logger: l}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		b.shared = b.newClient(key)
	}
	return b
}

// Rules returns the configured thresholds with o applied.
func (b *Builder) Rules(o Overrides) suspicion.Rules {
	rules := suspicion.Rules{
		MinPeakTier:    b.cfg.MinPeakTier,
		MaxCurrentTier: b.cfg.MaxCurrentTier,
		MinGap:         b.cfg.MinGap,
	}
	if o.MinPeakTier != nil {
		rules.MinPeakTier = *o.MinPeakTier
	}
	if o.MaxCurrentTier != nil {
		rules.MaxCurrentTier = *o.MaxCurrentTier
	}
	if o.MinGap != nil {
		rules.MinGap = *o.MinGap
	}
	return rules
}

// Build returns a Service for one batch.
func (b *Builder) Build(o Overrides) (*Service, error) {
	acts := b.cfg.Acts
	if o.Acts != nil {
		if *o.Acts < 1 {
			return nil, fmt.Errorf("acts must be at least 1, got %d", *o.Acts)
		}
		acts = *o.Acts
	}

	client := b.shared
	if key := strings.TrimSpace(o.APIKey); key != "" && key != strings.TrimSpace(b.cfg.APIKey) {
		client = b.newClient(key)
	}
	if client == nil {
		return nil, ErrMissingAPIKey
	}

	return New(client,
		WithRules(b.Rules(o)),
		WithActs(acts),
		WithLogger(b.logger),
	), nil
}

func (b *Builder) newClient(key string) *tracker.Client {
	return tracker.New(key,
		tracker.WithBaseURL(b.cfg.BaseURL),
		tracker.WithUserAgent(b.cfg.UserAgent),
		tracker.WithTimeout(b.cfg.Timeout()),
		tracker.WithMinDelay(b.cfg.MinDelay()),
		tracker.WithForceCollect(b.cfg.ForceCollect),
		tracker.WithLogger(b.logger.Named("tracker")),
	)
}
