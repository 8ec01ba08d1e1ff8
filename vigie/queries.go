// CLAUDE:SUMMARY Tracked query governance CRUD — the thin mutable edge around the read-only core.
package vigie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateQuery registers a new tracked query for the tenant.
func (s *Service) CreateQuery(ctx context.Context, tenantID string, q *TrackedQuery) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenant is required", ErrInvalidInput)
	}
	if err := validateQueryInput(q); err != nil {
		return err
	}
	q.ID = s.newID()
	q.TenantID = tenantID
	if err := s.store.InsertQuery(ctx, q); err != nil {
		return err
	}
	s.logger.Info("tracked query created", "query_id", q.ID, "tenant_id", tenantID)
	return nil
}

// GetQuery returns one tracked query within the tenant scope.
func (s *Service) GetQuery(ctx context.Context, tenantID, queryID string) (*TrackedQuery, error) {
	return s.resolveQuery(ctx, tenantID, queryID)
}

// ListQueries returns all tracked queries of the tenant.
func (s *Service) ListQueries(ctx context.Context, tenantID string) ([]*TrackedQuery, error) {
	return s.store.ListQueries(ctx, tenantID)
}

// UpdateQuery updates a tracked query in place.
func (s *Service) UpdateQuery(ctx context.Context, tenantID string, q *TrackedQuery) error {
	if err := validateQueryInput(q); err != nil {
		return err
	}
	q.TenantID = tenantID
	err := s.store.UpdateQuery(ctx, q)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// DeleteQuery removes a tracked query and, by cascade, its observations.
func (s *Service) DeleteQuery(ctx context.Context, tenantID, queryID string) error {
	err := s.store.DeleteQuery(ctx, tenantID, queryID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
