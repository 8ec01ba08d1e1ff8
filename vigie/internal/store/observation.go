// CLAUDE:SUMMARY Observation ledger: insert and ordered range scans. Append-only — no update or delete.
package store

import (
	"context"
	"database/sql"
	"time"
)

// InsertObservation appends one snapshot to the ledger. ValidAsOf defaults
// to CapturedAt when the provider supplied none.
func (s *Store) InsertObservation(ctx context.Context, o *Observation) error {
	if o.CreatedAt == 0 {
		o.CreatedAt = time.Now().UnixMilli()
	}
	if o.ValidAsOf == 0 {
		o.ValidAsOf = o.CapturedAt
	}
	if o.AIPanel == "" {
		o.AIPanel = AIPanelAbsent
	}
	if len(o.RawPayload) == 0 {
		o.RawPayload = []byte("{}")
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO serp_observations (id, tenant_id, query_id, captured_at,
		valid_as_of, raw_payload, ai_panel, ai_panel_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.TenantID, o.QueryID, o.CapturedAt,
		o.ValidAsOf, string(o.RawPayload), o.AIPanel, o.AIPanelText, o.CreatedAt,
	)
	return err
}

// ListObservations returns a query's observations with
// since < captured_at <= until, ordered by (captured_at, id). A zero bound
// means unbounded on that side; derivations with mandatory windows enforce
// their bounds before calling.
func (s *Store) ListObservations(ctx context.Context, tenantID, queryID string, since, until int64) ([]*Observation, error) {
	q := `SELECT id, tenant_id, query_id, captured_at, valid_as_of, raw_payload,
		ai_panel, ai_panel_text, created_at
		FROM serp_observations WHERE tenant_id = ? AND query_id = ?`
	args := []any{tenantID, queryID}
	if since > 0 {
		q += ` AND captured_at > ?`
		args = append(args, since)
	}
	if until > 0 {
		q += ` AND captured_at <= ?`
		args = append(args, until)
	}
	q += ` ORDER BY captured_at, id`

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var obs []*Observation
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

// CountObservations returns the ledger size for one query.
func (s *Store) CountObservations(ctx context.Context, tenantID, queryID string) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM serp_observations WHERE tenant_id = ? AND query_id = ?`,
		tenantID, queryID).Scan(&n)
	return n, err
}

func scanObservation(rows *sql.Rows) (*Observation, error) {
	var o Observation
	var payload string
	err := rows.Scan(&o.ID, &o.TenantID, &o.QueryID, &o.CapturedAt, &o.ValidAsOf,
		&payload, &o.AIPanel, &o.AIPanelText, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.RawPayload = []byte(payload)
	return &o, nil
}
