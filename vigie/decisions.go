// CLAUDE:SUMMARY Tenant-scope decision derivations: risk index, competitive pressure, momentum.
package vigie

import (
	"context"
	"fmt"
	"time"

	"github.com/hazyhaar/vigie/vigie/internal/volat"
)

// RiskIndex computes the project-wide risk concentration across the
// tenant's actively tracked queries.
func (s *Service) RiskIndex(ctx context.Context, tenantID string, windowDays int) (*RiskReport, error) {
	start := time.Now()
	var err error
	defer func() { s.logEvent(ctx, "risk_index", "tenant", tenantID, tenantID, start, err) }()

	var days int
	days, err = s.resolveWindowDays(windowDays)
	if err != nil {
		return nil, err
	}
	if tenantID == "" {
		err = fmt.Errorf("%w: tenant is required", ErrInvalidInput)
		return nil, err
	}

	queries, qErr := s.store.ListEnabledQueries(ctx, tenantID)
	if qErr != nil {
		err = qErr
		return nil, err
	}

	now := s.now(ctx)
	since, until := window(now, days)

	scores := make([]volat.QueryScore, 0, len(queries))
	for _, q := range queries {
		samples, sErr := s.loadSamples(ctx, tenantID, q.ID, since, until)
		if sErr != nil {
			err = sErr
			return nil, err
		}
		scores = append(scores, volat.QueryScore{
			QueryID:   q.ID,
			QueryText: q.QueryText,
			Profile:   volat.ComputeProfile(volat.Deltas(samples)),
		})
	}

	return &RiskReport{
		Scope: Scope{
			WindowDays:  days,
			WindowStart: since,
			WindowEnd:   until,
			ComputedAt:  now.UnixMilli(),
		},
		Risk: volat.Risk(scores),
	}, nil
}

// Pressure computes cross-query competitive pressure. The window is
// mandatory: this is the only derivation whose cost is multiplicative across
// queries × snapshots × results, and the bound is what keeps it finite.
func (s *Service) Pressure(ctx context.Context, tenantID string, windowDays, limit int) (*PressureReport, error) {
	start := time.Now()
	var err error
	defer func() { s.logEvent(ctx, "pressure", "tenant", tenantID, tenantID, start, err) }()

	var days, lim int
	days, err = s.resolvePressureWindowDays(windowDays)
	if err != nil {
		return nil, err
	}
	lim, err = s.resolveLimit(limit)
	if err != nil {
		return nil, err
	}
	if tenantID == "" {
		err = fmt.Errorf("%w: tenant is required", ErrInvalidInput)
		return nil, err
	}

	queries, qErr := s.store.ListEnabledQueries(ctx, tenantID)
	if qErr != nil {
		err = qErr
		return nil, err
	}

	now := s.now(ctx)
	since, until := window(now, days)

	byQuery := make(map[string][]volat.Sample, len(queries))
	for _, q := range queries {
		samples, sErr := s.loadSamples(ctx, tenantID, q.ID, since, until)
		if sErr != nil {
			err = sErr
			return nil, err
		}
		byQuery[q.ID] = samples
	}

	return &PressureReport{
		Scope: Scope{
			WindowDays:  days,
			WindowStart: since,
			WindowEnd:   until,
			ComputedAt:  now.UnixMilli(),
		},
		URLs: volat.Pressure(byQuery, lim),
	}, nil
}

// Momentum compares the query's current and immediately preceding windows
//. Both windows hang off the single request clock: current is
// (now-30d, now], prior is (now-60d, now-30d], and an observation exactly on
// the shared boundary belongs to the earlier window.
func (s *Service) Momentum(ctx context.Context, tenantID, queryID string) (*MomentumReport, error) {
	start := time.Now()
	var err error
	defer func() { s.logEvent(ctx, "momentum", "tracked_query", queryID, tenantID, start, err) }()

	var q *TrackedQuery
	q, err = s.resolveQuery(ctx, tenantID, queryID)
	if err != nil {
		return nil, err
	}

	now := s.now(ctx)
	days := s.cfg.MomentumWindowDays
	curSince, curUntil := window(now, days)
	priorSince, _ := window(now, 2*days)

	// One ordered scan covers both windows; the partition point is the
	// shared boundary, exclusive on the current side.
	samples, sErr := s.loadSamples(ctx, tenantID, queryID, priorSince, curUntil)
	if sErr != nil {
		err = sErr
		return nil, err
	}

	split := 0
	for split < len(samples) && samples[split].CapturedAt <= curSince {
		split++
	}
	prior, current := samples[:split], samples[split:]

	return &MomentumReport{
		Scope: Scope{
			QueryID:     q.ID,
			QueryText:   q.QueryText,
			Locale:      q.Locale,
			Device:      q.Device,
			WindowDays:  days,
			WindowStart: priorSince,
			WindowEnd:   curUntil,
			ComputedAt:  now.UnixMilli(),
		},
		Momentum: volat.ComputeMomentum(volat.Deltas(current), volat.Deltas(prior)),
	}, nil
}
