// CLAUDE:SUMMARY Re-exports internal types (TrackedQuery, Observation, Profile, derivation records) as the vigie public API.
// Package vigie is the search volatility intelligence core: a read-only
// analytics engine that turns the append-only ledger of SERP observations
// into diagnostic and decision-support metrics.
//
// The only stored entities are tracked queries and observations; every
// metric is a pure, replayable computation over them, keyed by
// (tenant, query, locale, device) and ordered by (captured_at, id).
package vigie

import (
	"github.com/hazyhaar/vigie/vigie/internal/serp"
	"github.com/hazyhaar/vigie/vigie/internal/store"
	"github.com/hazyhaar/vigie/vigie/internal/volat"
)

// Re-export store and derivation types for the public API.
type (
	TrackedQuery    = store.TrackedQuery
	Observation     = store.Observation
	Extraction      = serp.Extraction
	Profile         = volat.Profile
	URLContribution = volat.URLContribution
	Spike           = volat.Spike
	Transition      = volat.Transition
	Stability       = volat.Stability
	QueryScore      = volat.QueryScore
	RiskIndex       = volat.RiskIndex
	URLPressure     = volat.URLPressure
	Momentum        = volat.Momentum
)

// AI panel tri-states.
const (
	AIPanelPresent    = store.AIPanelPresent
	AIPanelAbsent     = store.AIPanelAbsent
	AIPanelParseError = store.AIPanelParseError
)

// Regime labels.
const (
	RegimeCalm     = volat.RegimeCalm
	RegimeShifting = volat.RegimeShifting
	RegimeUnstable = volat.RegimeUnstable
	RegimeChaotic  = volat.RegimeChaotic
)

// Scope echoes the resolved request scope so every response is
// self-describing. Timestamps are unix milliseconds; ComputedAt is the one
// wall-clock field responses are allowed to vary on between identical calls.
type Scope struct {
	QueryID     string `json:"query_id,omitempty"`
	QueryText   string `json:"query_text,omitempty"`
	Locale      string `json:"locale,omitempty"`
	Device      string `json:"device,omitempty"`
	WindowDays  int    `json:"window_days,omitempty"`
	WindowStart int64  `json:"window_start,omitempty"`
	WindowEnd   int64  `json:"window_end,omitempty"`
	ComputedAt  int64  `json:"computed_at"`
}

// ProfileReport is the volatility profile plus its regime label.
type ProfileReport struct {
	Scope   Scope   `json:"scope"`
	Profile Profile `json:"profile"`
	Regime  string  `json:"regime"`
}

// AttributionReport is the per-URL contribution view.
type AttributionReport struct {
	Scope      Scope             `json:"scope"`
	SampleSize int               `json:"sample_size"`
	URLs       []URLContribution `json:"urls"`
}

// SpikesReport is the outlier-pair ranking.
type SpikesReport struct {
	Scope      Scope   `json:"scope"`
	SampleSize int     `json:"sample_size"`
	Spikes     []Spike `json:"spikes"`
}

// TransitionsReport is the feature transition matrix. The counts of
// Transitions always sum to SampleSize.
type TransitionsReport struct {
	Scope       Scope        `json:"scope"`
	SampleSize  int          `json:"sample_size"`
	Transitions []Transition `json:"transitions"`
}

// StabilityReport is the AI panel stability model.
type StabilityReport struct {
	Scope     Scope     `json:"scope"`
	Stability Stability `json:"stability"`
}

// RiskReport is the project-wide risk concentration view.
type RiskReport struct {
	Scope Scope     `json:"scope"`
	Risk  RiskIndex `json:"risk"`
}

// PressureReport is the cross-query competitive pressure view.
type PressureReport struct {
	Scope Scope         `json:"scope"`
	URLs  []URLPressure `json:"urls"`
}

// MomentumReport compares two adjacent windows.
type MomentumReport struct {
	Scope    Scope    `json:"scope"`
	Momentum Momentum `json:"momentum"`
}
