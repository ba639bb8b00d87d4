package tracker

import (
	"errors"
)

// Sentinel kinds for tracker errors. An *APIError matches the sentinel of its
// Kind through errors.Is.
var (
	ErrRateLimited    = errors.New("tracker rate limited")
	ErrKeyNotApproved = errors.New("tracker api key not approved")
	ErrForbidden      = errors.New("tracker forbidden")
	ErrHTTPStatus     = errors.New("tracker http error")
	ErrBadResponse    = errors.New("tracker bad response")
	ErrTransport      = errors.New("tracker transport error")
	ErrMissingAPIKey  = errors.New("tracker api key missing")
)

// Kind classifies an APIError.
type Kind int

// Kinds of upstream failure.
const (
	KindRateLimited Kind = iota + 1
	KindKeyNotApproved
	KindForbidden
	KindHTTPStatus
	KindBadResponse
	KindTransport
)

var kindSentinels = map[Kind]error{
	KindRateLimited:    ErrRateLimited,
	KindKeyNotApproved: ErrKeyNotApproved,
	KindForbidden:      ErrForbidden,
	KindHTTPStatus:     ErrHTTPStatus,
	KindBadResponse:    ErrBadResponse,
	KindTransport:      ErrTransport,
}

// String returns a short label, also used as a log field.
func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindKeyNotApproved:
		return "key_not_approved"
	case KindForbidden:
		return "forbidden"
	case KindHTTPStatus:
		return "http_status"
	case KindBadResponse:
		return "bad_response"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// APIError is the single failure type of the client. Message is meant for end users.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string { return e.Message }

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *APIError) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}
