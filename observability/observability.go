// Package observability provides SQLite-native monitoring for vigie,
// replacing an external metrics stack with a side database the dashboards
// can query directly.
//
// All writes are best-effort and non-blocking for the caller: a failing
// observability store is logged via slog and never propagates into the
// request path.
package observability

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/hazyhaar/vigie/idgen"
)

// Schema creates the business event table. Call Init on the shared side
// database before constructing an EventLogger.
const schema = `
CREATE TABLE IF NOT EXISTS business_event_logs (
	event_id     TEXT PRIMARY KEY,
	event_type   TEXT NOT NULL,
	service_name TEXT NOT NULL,
	entity_type  TEXT NOT NULL DEFAULT '',
	entity_id    TEXT NOT NULL DEFAULT '',
	tenant_id    TEXT NOT NULL DEFAULT '',
	action       TEXT NOT NULL DEFAULT '',
	duration_ms  INTEGER NOT NULL DEFAULT 0,
	success      INTEGER NOT NULL DEFAULT 1,
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bel_type_time ON business_event_logs(event_type, created_at);
`

// Init applies the observability schema to db.
func Init(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// BusinessEvent represents a domain-level event to record.
type BusinessEvent struct {
	EventType   string
	ServiceName string
	EntityType  string
	EntityID    string
	TenantID    string
	Action      string
	Duration    time.Duration
	Success     bool
}

// EventLogger writes business events to the side database.
type EventLogger struct {
	db    *sql.DB
	newID idgen.Generator
}

// EventLoggerOption configures an EventLogger.
type EventLoggerOption func(*EventLogger)

// WithEventIDGenerator sets a custom ID generator for event IDs.
func WithEventIDGenerator(gen idgen.Generator) EventLoggerOption {
	return func(l *EventLogger) { l.newID = gen }
}

// NewEventLogger creates a logger backed by the given observability database.
func NewEventLogger(db *sql.DB, opts ...EventLoggerOption) *EventLogger {
	l := &EventLogger{
		db:    db,
		newID: idgen.Prefixed("evt_", idgen.Default),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// LogEvent records a business event. Errors are logged via slog but do not
// propagate, so a failing observability store never blocks the app.
func (l *EventLogger) LogEvent(ctx context.Context, event BusinessEvent) {
	if l == nil || l.db == nil {
		return
	}
	eventID := l.newID()
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO business_event_logs (
			event_id, event_type, service_name, entity_type, entity_id,
			tenant_id, action, duration_ms, success, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		eventID, event.EventType, event.ServiceName, event.EntityType, event.EntityID,
		event.TenantID, event.Action, event.Duration.Milliseconds(), event.Success,
		time.Now().Unix())
	if err != nil {
		slog.Error("observability event log failed", "error", err, "event_type", event.EventType)
	}
}
