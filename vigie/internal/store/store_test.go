package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/hazyhaar/vigie/dbopen"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := dbopen.OpenMemory(t)
	if err := ApplySchema(db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func insertTestQuery(t *testing.T, s *Store, tenantID, id string) *TrackedQuery {
	t.Helper()
	q := &TrackedQuery{
		ID:        id,
		TenantID:  tenantID,
		QueryText: "best espresso machine",
		Enabled:   true,
	}
	if err := s.InsertQuery(context.Background(), q); err != nil {
		t.Fatalf("insert query: %v", err)
	}
	return q
}

func TestApplySchema(t *testing.T) {
	// WHAT: Verify schema creates all tables without error.
	// WHY: Schema is the foundation; if it fails, nothing works.
	db := openTestDB(t)
	for _, table := range []string{"tracked_queries", "serp_observations"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestInsertAndGetQuery(t *testing.T) {
	// WHAT: Insert a tracked query and read it back with defaults applied.
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	insertTestQuery(t, s, "tenant-1", "q-001")

	got, err := s.GetQuery(ctx, "tenant-1", "q-001")
	if err != nil {
		t.Fatalf("get query: %v", err)
	}
	if got.QueryText != "best espresso machine" {
		t.Errorf("QueryText = %q", got.QueryText)
	}
	if got.Locale != "en-US" || got.Device != "desktop" {
		t.Errorf("defaults not applied: locale=%q device=%q", got.Locale, got.Device)
	}
	if got.CreatedAt == 0 || got.UpdatedAt == 0 {
		t.Error("timestamps not set")
	}
}

func TestGetQuery_CrossTenant(t *testing.T) {
	// WHAT: Another tenant's query id behaves exactly like a missing id.
	// WHY: Tenant isolation must be indistinguishable from absence.
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	insertTestQuery(t, s, "tenant-1", "q-001")

	_, err := s.GetQuery(ctx, "tenant-2", "q-001")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("cross-tenant get: err = %v, want sql.ErrNoRows", err)
	}
}

func TestListEnabledQueries(t *testing.T) {
	// WHAT: Only enabled queries return, ordered by text then id.
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	for _, q := range []*TrackedQuery{
		{ID: "q-b", TenantID: "t1", QueryText: "zeta", Enabled: true},
		{ID: "q-a", TenantID: "t1", QueryText: "alpha", Enabled: true},
		{ID: "q-c", TenantID: "t1", QueryText: "beta", Enabled: false},
		{ID: "q-d", TenantID: "t2", QueryText: "alpha", Enabled: true},
	} {
		if err := s.InsertQuery(ctx, q); err != nil {
			t.Fatalf("insert %s: %v", q.ID, err)
		}
	}

	got, err := s.ListEnabledQueries(ctx, "t1")
	if err != nil {
		t.Fatalf("list enabled: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d queries, want 2", len(got))
	}
	if got[0].ID != "q-a" || got[1].ID != "q-b" {
		t.Errorf("order = %s, %s, want q-a, q-b", got[0].ID, got[1].ID)
	}
}

func TestUpdateQuery(t *testing.T) {
	// WHAT: Update mutates fields in-tenant; a cross-tenant update matches
	// nothing and reports sql.ErrNoRows.
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	q := insertTestQuery(t, s, "tenant-1", "q-001")

	q.QueryText = "best grinder"
	q.Enabled = false
	if err := s.UpdateQuery(ctx, q); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.GetQuery(ctx, "tenant-1", "q-001")
	if got.QueryText != "best grinder" || got.Enabled {
		t.Errorf("update not applied: %+v", got)
	}

	foreign := *q
	foreign.TenantID = "tenant-2"
	if err := s.UpdateQuery(ctx, &foreign); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("cross-tenant update: err = %v, want sql.ErrNoRows", err)
	}
}

func TestDeleteQuery_Cascades(t *testing.T) {
	// WHAT: Deleting a query removes its observations via FK cascade.
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	insertTestQuery(t, s, "tenant-1", "q-001")
	obs := &Observation{
		ID: "o-001", TenantID: "tenant-1", QueryID: "q-001", CapturedAt: 1000,
	}
	if err := s.InsertObservation(ctx, obs); err != nil {
		t.Fatalf("insert observation: %v", err)
	}

	if err := s.DeleteQuery(ctx, "tenant-1", "q-001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	n, err := s.CountObservations(ctx, "tenant-1", "q-001")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("count = %d, want 0 after cascade", n)
	}
}

func TestInsertObservation_Defaults(t *testing.T) {
	// WHAT: ValidAsOf falls back to CapturedAt, ai_panel to absent, payload
	// to an empty JSON object.
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	insertTestQuery(t, s, "t1", "q-001")
	o := &Observation{ID: "o-001", TenantID: "t1", QueryID: "q-001", CapturedAt: 5000}
	if err := s.InsertObservation(ctx, o); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.ListObservations(ctx, "t1", "q-001", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d observations, want 1", len(got))
	}
	if got[0].ValidAsOf != 5000 {
		t.Errorf("ValidAsOf = %d, want 5000", got[0].ValidAsOf)
	}
	if got[0].AIPanel != AIPanelAbsent {
		t.Errorf("AIPanel = %q, want absent", got[0].AIPanel)
	}
	if string(got[0].RawPayload) != "{}" {
		t.Errorf("RawPayload = %q, want {}", got[0].RawPayload)
	}
}

func TestInsertObservation_RejectsBadPanel(t *testing.T) {
	// WHAT: The CHECK constraint rejects an unknown ai_panel value.
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	insertTestQuery(t, s, "t1", "q-001")
	o := &Observation{
		ID: "o-001", TenantID: "t1", QueryID: "q-001",
		CapturedAt: 1000, AIPanel: "maybe",
	}
	if err := s.InsertObservation(ctx, o); err == nil {
		t.Fatal("expected CHECK violation for ai_panel = maybe")
	}
}

func TestListObservations_WindowAndOrder(t *testing.T) {
	// WHAT: (since, until] bounds on captured_at, half-open on the left,
	// inclusive on the right; rows ordered by (captured_at, id).
	// WHY: Window membership at the exact boundary decides which momentum
	// window an observation lands in.
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	insertTestQuery(t, s, "t1", "q-001")
	for _, o := range []*Observation{
		{ID: "o-b", TenantID: "t1", QueryID: "q-001", CapturedAt: 2000},
		{ID: "o-a", TenantID: "t1", QueryID: "q-001", CapturedAt: 2000},
		{ID: "o-c", TenantID: "t1", QueryID: "q-001", CapturedAt: 1000},
		{ID: "o-d", TenantID: "t1", QueryID: "q-001", CapturedAt: 3000},
	} {
		if err := s.InsertObservation(ctx, o); err != nil {
			t.Fatalf("insert %s: %v", o.ID, err)
		}
	}

	got, err := s.ListObservations(ctx, "t1", "q-001", 1000, 2000)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// captured_at = 1000 is excluded (since is exclusive); 2000 included.
	if len(got) != 2 {
		t.Fatalf("got %d observations, want 2", len(got))
	}
	if got[0].ID != "o-a" || got[1].ID != "o-b" {
		t.Errorf("order = %s, %s, want o-a, o-b (id tie-break)", got[0].ID, got[1].ID)
	}

	all, err := s.ListObservations(ctx, "t1", "q-001", 0, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d observations, want 4", len(all))
	}
	if all[0].ID != "o-c" || all[3].ID != "o-d" {
		t.Errorf("full order heads/tails = %s, %s", all[0].ID, all[3].ID)
	}
}

func TestListObservations_TenantIsolation(t *testing.T) {
	// WHAT: A tenant never sees another tenant's ledger rows, even for the
	// same query id string.
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	insertTestQuery(t, s, "t1", "q-001")
	insertTestQuery(t, s, "t2", "q-002")
	if err := s.InsertObservation(ctx, &Observation{
		ID: "o-1", TenantID: "t1", QueryID: "q-001", CapturedAt: 1000,
	}); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListObservations(ctx, "t2", "q-001", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("tenant t2 sees %d foreign rows", len(got))
	}
}
