// CLAUDE:SUMMARY Service orchestrator: construction, request clock, window math, sample loading with extraction memoization.
package vigie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/jonboulle/clockwork"

	"github.com/hazyhaar/vigie/idgen"
	"github.com/hazyhaar/vigie/kit"
	"github.com/hazyhaar/vigie/observability"
	"github.com/hazyhaar/vigie/vigie/internal/serp"
	"github.com/hazyhaar/vigie/vigie/internal/store"
	"github.com/hazyhaar/vigie/vigie/internal/volat"
)

// Service is the volatility core. It owns no background work and no mutable
// aggregate state: every request loads its own scoped slice of the ledger
// and folds it.
type Service struct {
	store  *store.Store
	logger *slog.Logger
	cfg    *Config
	clock  clockwork.Clock
	newID  idgen.Generator
	events *observability.EventLogger

	// extractions memoizes Extract results keyed by observation id.
	// Observation rows are immutable, so an entry can never be stale.
	extractions *ttlcache.Cache[string, serp.Extraction]
}

// ServiceOption configures a Service during creation.
type ServiceOption func(*Service)

// WithClock sets the clock used to pin the per-request "now". Tests use
// clockwork.NewFakeClock.
func WithClock(c clockwork.Clock) ServiceOption {
	return func(s *Service) { s.clock = c }
}

// WithIDGenerator sets a custom ID generator for new entities.
func WithIDGenerator(gen idgen.Generator) ServiceOption {
	return func(s *Service) { s.newID = gen }
}

// WithEvents wires a business-event logger for served derivations.
func WithEvents(l *observability.EventLogger) ServiceOption {
	return func(s *Service) { s.events = l }
}

// New creates a vigie Service on an already-opened database and applies the
// schema.
func New(db *sql.DB, cfg *Config, logger *slog.Logger, opts ...ServiceOption) (*Service, error) {
	if cfg == nil {
		cfg = defaultConfig()
	}
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	if err := store.ApplySchema(db); err != nil {
		return nil, fmt.Errorf("vigie: apply schema: %w", err)
	}

	svc := &Service{
		store:  store.NewStore(db),
		logger: logger,
		cfg:    cfg,
		clock:  clockwork.NewRealClock(),
		newID:  idgen.Default,
	}
	for _, opt := range opts {
		opt(svc)
	}

	svc.extractions = ttlcache.New[string, serp.Extraction](
		ttlcache.WithTTL[string, serp.Extraction](cfg.ExtractionCacheTTL),
		ttlcache.WithCapacity[string, serp.Extraction](cfg.ExtractionCacheSize),
	)
	go svc.extractions.Start()

	return svc, nil
}

// Close releases service resources.
func (s *Service) Close() error {
	s.extractions.Stop()
	return nil
}

// now returns the pinned request clock, reading the service clock exactly
// once when no value was pinned upstream. Every window boundary in a request
// derives from this single reading.
func (s *Service) now(ctx context.Context) time.Time {
	if t, ok := kit.GetNow(ctx); ok {
		return t
	}
	return s.clock.Now()
}

// window converts a day count into (since, until] bounds in unix ms,
// anchored to the request clock.
func window(now time.Time, days int) (since, until int64) {
	until = now.UnixMilli()
	since = now.AddDate(0, 0, -days).UnixMilli()
	return since, until
}

// resolveQuery loads a tracked query within the tenant scope. A missing id
// and a cross-tenant id are the same ErrNotFound.
func (s *Service) resolveQuery(ctx context.Context, tenantID, queryID string) (*TrackedQuery, error) {
	if tenantID == "" || queryID == "" {
		return nil, fmt.Errorf("%w: tenant and query id are required", ErrInvalidInput)
	}
	q, err := s.store.GetQuery(ctx, tenantID, queryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// loadSamples loads the window's observations for one query and extracts
// each payload, memoizing by observation id. Order follows the ledger:
// (captured_at, id).
func (s *Service) loadSamples(ctx context.Context, tenantID, queryID string, since, until int64) ([]volat.Sample, error) {
	obs, err := s.store.ListObservations(ctx, tenantID, queryID, since, until)
	if err != nil {
		return nil, err
	}

	samples := make([]volat.Sample, 0, len(obs))
	for _, o := range obs {
		ex := s.extract(o)
		samples = append(samples, volat.Sample{
			ID:         o.ID,
			CapturedAt: o.CapturedAt,
			Results:    ex.Results,
			Features:   ex.Features,
			AIPanel:    o.AIPanel,
		})
	}
	return samples, nil
}

// extract returns the memoized extraction of one observation.
func (s *Service) extract(o *Observation) serp.Extraction {
	if item := s.extractions.Get(o.ID); item != nil {
		return item.Value()
	}
	ex := serp.Extract(o.RawPayload)
	s.extractions.Set(o.ID, ex, ttlcache.DefaultTTL)
	return ex
}

// logEvent records a served derivation. Best-effort; never blocks the
// request path.
func (s *Service) logEvent(ctx context.Context, action, entityType, entityID, tenantID string, start time.Time, err error) {
	if s.events == nil {
		return
	}
	s.events.LogEvent(ctx, observability.BusinessEvent{
		EventType:   "derivation_served",
		ServiceName: "vigie",
		EntityType:  entityType,
		EntityID:    entityID,
		TenantID:    tenantID,
		Action:      action,
		Duration:    time.Since(start),
		Success:     err == nil,
	})
}
