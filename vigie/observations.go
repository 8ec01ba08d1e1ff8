// CLAUDE:SUMMARY Observation ingest glue (append-only) and windowed listing.
package vigie

import (
	"context"
)

// AppendObservation appends one snapshot to the ledger for a tracked query.
// The ledger is append-only: there is no update or delete path, corrections
// arrive as new observations.
func (s *Service) AppendObservation(ctx context.Context, tenantID, queryID string, o *Observation) error {
	if err := validateObservationInput(o); err != nil {
		return err
	}
	if _, err := s.resolveQuery(ctx, tenantID, queryID); err != nil {
		return err
	}

	o.ID = s.newID()
	o.TenantID = tenantID
	o.QueryID = queryID
	if o.AIPanel == "" {
		o.AIPanel = AIPanelAbsent
	}
	if err := s.store.InsertObservation(ctx, o); err != nil {
		return err
	}
	s.logger.Debug("observation appended",
		"observation_id", o.ID, "query_id", queryID, "captured_at", o.CapturedAt)
	return nil
}

// ObservationView pairs a ledger row with its recomputed extraction.
type ObservationView struct {
	Observation *Observation `json:"observation"`
	Extraction  Extraction   `json:"extraction"`
}

// Observations lists the window's ledger slice with extractions attached.
func (s *Service) Observations(ctx context.Context, tenantID, queryID string, windowDays int) ([]ObservationView, error) {
	days, err := s.resolveWindowDays(windowDays)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveQuery(ctx, tenantID, queryID); err != nil {
		return nil, err
	}

	since, until := window(s.now(ctx), days)
	obs, err := s.store.ListObservations(ctx, tenantID, queryID, since, until)
	if err != nil {
		return nil, err
	}

	views := make([]ObservationView, 0, len(obs))
	for _, o := range obs {
		views = append(views, ObservationView{Observation: o, Extraction: s.extract(o)})
	}
	return views, nil
}
