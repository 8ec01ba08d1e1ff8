// Package kit holds the request-scoped plumbing shared by every vigie
// transport (HTTP, MCP): context keys, the endpoint shape, and the MCP
// tool adapter.
package kit

import (
	"context"
	"time"
)

type contextKey string

const (
	TenantIDKey  contextKey = "kit_tenant_id"
	RoleKey      contextKey = "kit_role"
	RequestIDKey contextKey = "kit_request_id"
	NowKey       contextKey = "kit_now"
)

func WithTenantID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TenantIDKey, id)
}
func GetTenantID(ctx context.Context) string {
	v, _ := ctx.Value(TenantIDKey).(string)
	return v
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}
func GetRole(ctx context.Context) string {
	v, _ := ctx.Value(RoleKey).(string)
	return v
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}

// WithNow pins the logical "now" for a request. Every window boundary
// computed during the request derives from this one value, so two windows
// built in the same request can never drift apart or overlap.
func WithNow(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, NowKey, now)
}

// GetNow returns the pinned request clock, or the zero time when none is
// set. Callers with no pinned value must read their own clock exactly once.
func GetNow(ctx context.Context) (time.Time, bool) {
	v, ok := ctx.Value(NowKey).(time.Time)
	return v, ok
}
