// CLAUDE:SUMMARY Per-query derivations: volatility profile + regime, attribution, spikes, transitions, AI stability.
package vigie

import (
	"context"
	"time"

	"github.com/hazyhaar/vigie/vigie/internal/volat"
)

// deriveDeltas resolves the query, loads the window's samples and derives
// the N-1 consecutive deltas. Every per-query derivation goes through here,
// so they all agree on scope resolution and ordering.
func (s *Service) deriveDeltas(ctx context.Context, tenantID, queryID string, windowDays int) (*TrackedQuery, Scope, []volat.Delta, error) {
	days, err := s.resolveWindowDays(windowDays)
	if err != nil {
		return nil, Scope{}, nil, err
	}
	q, err := s.resolveQuery(ctx, tenantID, queryID)
	if err != nil {
		return nil, Scope{}, nil, err
	}

	now := s.now(ctx)
	since, until := window(now, days)
	samples, err := s.loadSamples(ctx, tenantID, queryID, since, until)
	if err != nil {
		return nil, Scope{}, nil, err
	}

	scope := Scope{
		QueryID:     q.ID,
		QueryText:   q.QueryText,
		Locale:      q.Locale,
		Device:      q.Device,
		WindowDays:  days,
		WindowStart: since,
		WindowEnd:   until,
		ComputedAt:  now.UnixMilli(),
	}
	return q, scope, volat.Deltas(samples), nil
}

// Volatility computes the window's volatility profile and regime label.
func (s *Service) Volatility(ctx context.Context, tenantID, queryID string, windowDays int) (*ProfileReport, error) {
	start := time.Now()
	_, scope, deltas, err := s.deriveDeltas(ctx, tenantID, queryID, windowDays)
	defer func() { s.logEvent(ctx, "volatility", "tracked_query", queryID, tenantID, start, err) }()
	if err != nil {
		return nil, err
	}

	profile := volat.ComputeProfile(deltas)
	return &ProfileReport{
		Scope:   scope,
		Profile: profile,
		Regime:  volat.Regime(profile.Score),
	}, nil
}

// Attribution computes the per-URL contribution view. Truncation to
// limit happens after the full sort, never before.
func (s *Service) Attribution(ctx context.Context, tenantID, queryID string, windowDays, limit int) (*AttributionReport, error) {
	start := time.Now()
	lim, err := s.resolveLimit(limit)
	if err != nil {
		return nil, err
	}
	_, scope, deltas, err := s.deriveDeltas(ctx, tenantID, queryID, windowDays)
	defer func() { s.logEvent(ctx, "attribution", "tracked_query", queryID, tenantID, start, err) }()
	if err != nil {
		return nil, err
	}

	return &AttributionReport{
		Scope:      scope,
		SampleSize: len(deltas),
		URLs:       volat.Attribution(deltas, lim),
	}, nil
}

// Spikes ranks outlier pairs. Each pair's score is the composite
// scorer run on exactly that pair.
func (s *Service) Spikes(ctx context.Context, tenantID, queryID string, windowDays, limit int) (*SpikesReport, error) {
	start := time.Now()
	lim, err := s.resolveLimit(limit)
	if err != nil {
		return nil, err
	}
	_, scope, deltas, err := s.deriveDeltas(ctx, tenantID, queryID, windowDays)
	defer func() { s.logEvent(ctx, "spikes", "tracked_query", queryID, tenantID, start, err) }()
	if err != nil {
		return nil, err
	}

	return &SpikesReport{
		Scope:      scope,
		SampleSize: len(deltas),
		Spikes:     volat.Spikes(deltas, lim),
	}, nil
}

// Transitions computes the feature transition matrix. Never truncated:
// the bucket counts must sum to the sample size.
func (s *Service) Transitions(ctx context.Context, tenantID, queryID string, windowDays int) (*TransitionsReport, error) {
	start := time.Now()
	_, scope, deltas, err := s.deriveDeltas(ctx, tenantID, queryID, windowDays)
	defer func() { s.logEvent(ctx, "transitions", "tracked_query", queryID, tenantID, start, err) }()
	if err != nil {
		return nil, err
	}

	return &TransitionsReport{
		Scope:       scope,
		SampleSize:  len(deltas),
		Transitions: volat.Transitions(deltas),
	}, nil
}

// AIStability computes the AI panel streak model.
func (s *Service) AIStability(ctx context.Context, tenantID, queryID string, windowDays int) (*StabilityReport, error) {
	start := time.Now()
	_, scope, deltas, err := s.deriveDeltas(ctx, tenantID, queryID, windowDays)
	defer func() { s.logEvent(ctx, "ai_stability", "tracked_query", queryID, tenantID, start, err) }()
	if err != nil {
		return nil, err
	}

	return &StabilityReport{
		Scope:     scope,
		Stability: volat.AIStability(deltas),
	}, nil
}
