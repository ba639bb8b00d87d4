// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/smurfwatch/internal/app"
	"github.com/okian/smurfwatch/internal/domain/types"
	"github.com/okian/smurfwatch/pkg/logger"
)

// apiKeyHeader carries a caller supplied tracker key.
const apiKeyHeader = "TRN-Api-Key"

// Checker runs checks for one request.
type Checker interface {
	CheckAll(ctx context.Context, raws []string, progress service.ProgressFunc) service.Report
	CheckRow(ctx context.Context, raw string) types.RowResult
	Acts() int
}

// Params are the per-request overrides.
type Params = service.Overrides

// CheckerFactory builds a Checker for one request. It returns
// service.ErrMissingAPIKey when neither the request nor the configuration
// carries a key.
type CheckerFactory func(p Params) (Checker, error)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	checkHandler  *CheckHandler
	lookupHandler *LookupHandler
}

// Option configures the Server.
type Option func(*serverOptions)

type serverOptions struct {
	maxUploadBytes int64
	column         string
	logger         logger.Logger
}

// WithMaxUploadBytes caps request bodies on POST /check.
func WithMaxUploadBytes(n int64) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxUploadBytes = n
		}
	}
}

// WithDefaultColumn sets the identifier column used when a request names none.
func WithDefaultColumn(column string) Option {
	return func(o *serverOptions) { o.column = column }
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(factory CheckerFactory, opts ...Option) *Server {
	o := serverOptions{maxUploadBytes: defaultMaxUploadBytes}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("api")
	}
	return &Server{
		healthHandler: NewHealthHandler(),
		checkHandler:  NewCheckHandler(factory, o),
		lookupHandler: NewLookupHandler(factory),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/check", MetricsMiddleware(s.checkHandler.HandleCheck, "check"))
	mux.HandleFunc("/lookup/", MetricsMiddleware(s.lookupHandler.HandleLookup, "lookup"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// paramsFrom reads the overrides shared by /check and /lookup.
func paramsFrom(r *http.Request) (Params, error) {
	q := r.URL.Query()
	p := Params{APIKey: strings.TrimSpace(r.Header.Get(apiKeyHeader))}
	fields := []struct {
		name string
		dst  **int
	}{
		{"min_peak_tier", &p.MinPeakTier},
		{"max_current_tier", &p.MaxCurrentTier},
		{"min_gap", &p.MinGap},
		{"acts", &p.Acts},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, WrapKind("api.params", ErrBadRequest, invalidParam(f.name, raw))
		}
		*f.dst = &v
	}
	if p.Acts != nil && *p.Acts < 1 {
		return Params{}, WrapKind("api.params", ErrBadRequest, invalidParam("acts", q.Get("acts")))
	}
	return p, nil
}
