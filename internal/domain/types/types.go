// Package types contains the check result types shared by the service and
// its adapters.
package types

// Outcome classifies how a row ended.
type Outcome string

// Row outcomes.
const (
	OutcomeChecked      Outcome = "checked"
	OutcomeInvalidID    Outcome = "invalid_id"
	OutcomeLookupFailed Outcome = "lookup_failed"
	OutcomeUnexpected   Outcome = "unexpected"
)

// Failed reports whether the row carries an error message instead of a verdict.
func (o Outcome) Failed() bool {
	return o != OutcomeChecked
}

// ActResult is the best tier of one act.
type ActResult struct {
	Act  string `json:"act"`
	Tier *int   `json:"tier"`
	Rank string `json:"rank"`
}

// RowResult is the result of checking one identifier. Fields past RiotID are
// only populated when Outcome is OutcomeChecked.
type RowResult struct {
	Row       int     `json:"row"`
	RiotIDRaw string  `json:"riot_id_raw"`
	Nick      string  `json:"nick,omitempty"`
	Tag       string  `json:"tag,omitempty"`
	RiotID    string  `json:"riot_id,omitempty"`
	Outcome   Outcome `json:"outcome"`

	ActsDetected []string    `json:"acts_detected,omitempty"`
	CurrentTier  *int        `json:"current_tier,omitempty"`
	CurrentRank  string      `json:"current_rank,omitempty"`
	PeakTier     *int        `json:"peak_tier,omitempty"`
	PeakRank     string      `json:"peak_rank,omitempty"`
	PerAct       []ActResult `json:"per_act,omitempty"`
	Suspicious   *bool       `json:"suspicious_smurf,omitempty"`
	Reason       string      `json:"reason,omitempty"`

	Error string `json:"error,omitempty"`
}

// IsSuspicious is false for rows without a verdict.
func (r RowResult) IsSuspicious() bool {
	return r.Suspicious != nil && *r.Suspicious
}
