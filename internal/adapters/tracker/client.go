// Package tracker is a minimal client for the Tracker Network Valorant
// profile endpoint.
package tracker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/okian/smurfwatch/internal/domain/profile"
	"github.com/okian/smurfwatch/internal/domain/riotid"
	"github.com/okian/smurfwatch/pkg/logger"
	"github.com/okian/smurfwatch/pkg/metrics"
)

// Defaults mirror what the tracker.gg frontend sends.
const (
	DefaultBaseURL   = "https://api.tracker.gg/api/v2"
	DefaultUserAgent = "smurfwatch/1.0"
	DefaultTimeout   = 20 * time.Second
	DefaultMinDelay  = 200 * time.Millisecond

	apiKeyHeader     = "TRN-Api-Key"
	profilePath      = "/valorant/standard/profile/riot/"
	notApprovedMark  = "not been approved"
	maxBodySnippet   = 500
	maxResponseBytes = 16 << 20
)

// Client fetches one profile per call. Calls are spaced by at least minDelay,
// measured from the end of the previous call; concurrent callers are serialized.
type Client struct {
	http         *http.Client
	timeout      time.Duration
	baseURL      string
	apiKey       string
	userAgent    string
	forceCollect bool
	minDelay     time.Duration
	logger       logger.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// New creates a client for apiKey. Surrounding whitespace of the key is dropped.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		timeout:      DefaultTimeout,
		baseURL:      DefaultBaseURL,
		apiKey:       strings.TrimSpace(apiKey),
		userAgent:    DefaultUserAgent,
		forceCollect: true,
		minDelay:     DefaultMinDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	return c
}

// ProfileURL returns the request URL for id.
func (c *Client) ProfileURL(id riotid.ID) string {
	force := "false"
	if c.forceCollect {
		force = "true"
	}
	return c.baseURL + profilePath + EscapeRiotID(id) + "?forceCollect=" + force
}

// EscapeRiotID percent-encodes Nick#Tag as a single path segment, '#' becoming %23.
func EscapeRiotID(id riotid.ID) string {
	return strings.ReplaceAll(url.QueryEscape(id.String()), "+", "%20")
}

// FetchProfile performs one throttled GET and decodes the body. Every failure
// is an *APIError; nothing is retried.
func (c *Client) FetchProfile(ctx context.Context, id riotid.ID) (profile.Document, error) {
	if c.apiKey == "" {
		return profile.Document{}, ErrMissingAPIKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.throttle(ctx); err != nil {
		return profile.Document{}, &APIError{
			Kind:    KindTransport,
			Message: fmt.Sprintf("request cancelled: %v", err),
			Err:     err,
		}
	}
	defer func() { c.lastCall = time.Now() }()

	return c.get(ctx, id)
}

// throttle sleeps out whatever remains of minDelay since the previous call.
func (c *Client) throttle(ctx context.Context) error {
	if c.minDelay <= 0 || c.lastCall.IsZero() {
		return nil
	}
	remaining := c.minDelay - time.Since(c.lastCall)
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		metrics.RecordThrottleWait(float64(remaining.Milliseconds()))
		return nil
	}
}

func (c *Client) get(ctx context.Context, id riotid.ID) (profile.Document, error) {
	target := c.ProfileURL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return profile.Document{}, &APIError{Kind: KindTransport, Message: fmt.Sprintf("build request: %v", err), Err: err}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug(ctx, "fetching profile", logger.String("riot_id", id.String()))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordTrackerRequest(0, float64(time.Since(start).Milliseconds()))
		return profile.Document{}, &APIError{Kind: KindTransport, Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn(ctx, "failed to close response body", logger.Error(err))
		}
	}()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	metrics.RecordTrackerRequest(resp.StatusCode, float64(time.Since(start).Milliseconds()))

	if apiErr := statusError(resp.StatusCode, body); apiErr != nil {
		return profile.Document{}, apiErr
	}
	if readErr != nil {
		return profile.Document{}, &APIError{
			Kind:       KindTransport,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("reading response failed: %v", readErr),
			Err:        readErr,
		}
	}

	doc, err := profile.Decode(body)
	if err != nil {
		return profile.Document{}, &APIError{
			Kind:       KindBadResponse,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("non-JSON response: %v", err),
			Err:        err,
		}
	}
	return doc, nil
}

// statusError maps an error status to an *APIError, nil for success codes.
func statusError(status int, body []byte) *APIError {
	switch {
	case status == http.StatusTooManyRequests:
		return &APIError{
			Kind:       KindRateLimited,
			StatusCode: status,
			Message:    "rate limited (429): slow down and try again",
		}
	case status == http.StatusForbidden:
		txt := snippet(body)
		if strings.Contains(strings.ToLower(txt), notApprovedMark) {
			return &APIError{
				Kind:       KindKeyNotApproved,
				StatusCode: status,
				Message: "TRN-Api-Key not approved yet: Tracker Network blocked access (403); " +
					"ask them on their Discord to approve/whitelist your application",
			}
		}
		return &APIError{Kind: KindForbidden, StatusCode: status, Message: "HTTP 403: " + txt}
	case status >= http.StatusBadRequest:
		return &APIError{
			Kind:       KindHTTPStatus,
			StatusCode: status,
			Message:    fmt.Sprintf("HTTP %d: %s", status, snippet(body)),
		}
	default:
		return nil
	}
}

// snippet returns at most maxBodySnippet characters of body.
func snippet(body []byte) string {
	r := []rune(string(body))
	if len(r) > maxBodySnippet {
		r = r[:maxBodySnippet]
	}
	return string(r)
}
