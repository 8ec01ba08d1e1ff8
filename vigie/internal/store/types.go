// CLAUDE:SUMMARY Store data types: TrackedQuery (governance record) and Observation (append-only ledger row).
package store

// TrackedQuery declares intent to observe one (query, locale, device)
// combination for a tenant. Mutable governance record; it feeds the
// volatility math only as a lookup key.
type TrackedQuery struct {
	ID        string `json:"id"`
	TenantID  string `json:"-"`
	QueryText string `json:"query_text"`
	Locale    string `json:"locale"`
	Device    string `json:"device"`
	IsPrimary bool   `json:"is_primary"`
	Enabled   bool   `json:"enabled"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// AI panel tri-states stored on an observation.
const (
	AIPanelPresent    = "present"
	AIPanelAbsent     = "absent"
	AIPanelParseError = "parse_error"
)

// Observation is one immutable SERP snapshot. Rows are only ever inserted;
// corrections arrive as new observations. Timestamps are unix milliseconds.
type Observation struct {
	ID          string `json:"id"`
	TenantID    string `json:"-"`
	QueryID     string `json:"query_id"`
	CapturedAt  int64  `json:"captured_at"`
	ValidAsOf   int64  `json:"valid_as_of"` // defaults to CapturedAt when the provider supplies none
	RawPayload  []byte `json:"-"`
	AIPanel     string `json:"ai_panel"`
	AIPanelText string `json:"ai_panel_text,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}
