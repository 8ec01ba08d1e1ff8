// Package store provides the data access layer for the vigie database.
//
// A Store wraps an already-opened *sql.DB. Tenant scoping is structural:
// every statement filters on tenant_id, so "not found" and "belongs to
// another tenant" are the same sql.ErrNoRows to callers.
package store

import "database/sql"

// Store wraps the vigie database.
type Store struct {
	DB *sql.DB
}

// NewStore creates a Store from an already-opened database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}
