// CLAUDE:SUMMARY Applies the vigie SQL schema: tracked_queries and the append-only serp_observations ledger.
package store

import "database/sql"

// Schema is the complete vigie schema. Every row carries tenant_id and every
// query in this package filters on it, so a cross-tenant id resolves exactly
// like a nonexistent one.
const Schema = `
-- Governance records: which (query, locale, device) keys are observed
CREATE TABLE IF NOT EXISTS tracked_queries (
    id          TEXT PRIMARY KEY,
    tenant_id   TEXT NOT NULL,
    query_text  TEXT NOT NULL,
    locale      TEXT NOT NULL DEFAULT 'en-US',
    device      TEXT NOT NULL DEFAULT 'desktop',
    is_primary  INTEGER NOT NULL DEFAULT 0,
    enabled     INTEGER NOT NULL DEFAULT 1,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_queries_tenant ON tracked_queries(tenant_id, enabled);

-- Append-only observation ledger. No UPDATE or DELETE statement for this
-- table exists anywhere in the repo; corrections arrive as new rows.
CREATE TABLE IF NOT EXISTS serp_observations (
    id            TEXT PRIMARY KEY,
    tenant_id     TEXT NOT NULL,
    query_id      TEXT NOT NULL REFERENCES tracked_queries(id) ON DELETE CASCADE,
    captured_at   INTEGER NOT NULL,
    valid_as_of   INTEGER NOT NULL,
    raw_payload   TEXT NOT NULL DEFAULT '{}',
    ai_panel      TEXT NOT NULL DEFAULT 'absent'
                  CHECK (ai_panel IN ('present','absent','parse_error')),
    ai_panel_text TEXT NOT NULL DEFAULT '',
    created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_obs_query_time
    ON serp_observations(tenant_id, query_id, captured_at, id);
`

// ApplySchema applies the vigie schema to db.
func ApplySchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
