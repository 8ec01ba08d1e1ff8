// CLAUDE:SUMMARY TrackedQuery CRUD, tenant-scoped throughout.
package store

import (
	"context"
	"database/sql"
	"time"
)

// InsertQuery adds a tracked query.
func (s *Store) InsertQuery(ctx context.Context, q *TrackedQuery) error {
	now := time.Now().UnixMilli()
	if q.CreatedAt == 0 {
		q.CreatedAt = now
	}
	if q.UpdatedAt == 0 {
		q.UpdatedAt = now
	}
	if q.Locale == "" {
		q.Locale = "en-US"
	}
	if q.Device == "" {
		q.Device = "desktop"
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO tracked_queries (id, tenant_id, query_text, locale, device,
		is_primary, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.TenantID, q.QueryText, q.Locale, q.Device,
		q.IsPrimary, q.Enabled, q.CreatedAt, q.UpdatedAt,
	)
	return err
}

// GetQuery retrieves a tracked query by id within the tenant scope.
// Returns sql.ErrNoRows for both a missing id and a cross-tenant id.
func (s *Store) GetQuery(ctx context.Context, tenantID, id string) (*TrackedQuery, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, tenant_id, query_text, locale, device, is_primary, enabled,
		created_at, updated_at
		FROM tracked_queries WHERE tenant_id = ? AND id = ?`, tenantID, id)
	return scanQuery(row)
}

// ListQueries returns all tracked queries of a tenant, newest first.
func (s *Store) ListQueries(ctx context.Context, tenantID string) ([]*TrackedQuery, error) {
	return s.listQueries(ctx,
		`SELECT id, tenant_id, query_text, locale, device, is_primary, enabled,
		created_at, updated_at
		FROM tracked_queries WHERE tenant_id = ? ORDER BY created_at DESC, id`, tenantID)
}

// ListEnabledQueries returns the actively tracked queries of a tenant in a
// deterministic order (query text, then id).
func (s *Store) ListEnabledQueries(ctx context.Context, tenantID string) ([]*TrackedQuery, error) {
	return s.listQueries(ctx,
		`SELECT id, tenant_id, query_text, locale, device, is_primary, enabled,
		created_at, updated_at
		FROM tracked_queries WHERE tenant_id = ? AND enabled = 1
		ORDER BY query_text, id`, tenantID)
}

// UpdateQuery updates a tracked query's mutable fields within the tenant
// scope. Returns sql.ErrNoRows when no row matched.
func (s *Store) UpdateQuery(ctx context.Context, q *TrackedQuery) error {
	q.UpdatedAt = time.Now().UnixMilli()
	res, err := s.DB.ExecContext(ctx,
		`UPDATE tracked_queries SET query_text=?, locale=?, device=?,
		is_primary=?, enabled=?, updated_at=?
		WHERE tenant_id=? AND id=?`,
		q.QueryText, q.Locale, q.Device, q.IsPrimary, q.Enabled, q.UpdatedAt,
		q.TenantID, q.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteQuery removes a tracked query (cascades to its observations).
// Returns sql.ErrNoRows when no row matched.
func (s *Store) DeleteQuery(ctx context.Context, tenantID, id string) error {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM tracked_queries WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) listQueries(ctx context.Context, query string, args ...any) ([]*TrackedQuery, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []*TrackedQuery
	for rows.Next() {
		q, err := scanQueryRows(rows)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

func scanQuery(row *sql.Row) (*TrackedQuery, error) {
	var q TrackedQuery
	err := row.Scan(&q.ID, &q.TenantID, &q.QueryText, &q.Locale, &q.Device,
		&q.IsPrimary, &q.Enabled, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func scanQueryRows(rows *sql.Rows) (*TrackedQuery, error) {
	var q TrackedQuery
	err := rows.Scan(&q.ID, &q.TenantID, &q.QueryText, &q.Locale, &q.Device,
		&q.IsPrimary, &q.Enabled, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
