// CLAUDE:SUMMARY MCP tools mirroring the main derivations (profile, risk, pressure, momentum).
package vigie

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/vigie/kit"
)

// RegisterMCP registers the read-only vigie tools on an MCP server. The MCP
// transport is trusted local tooling, so the tenant scope arrives as an
// explicit argument rather than a JWT.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerVolatilityTool(srv)
	s.registerRiskTool(srv)
	s.registerPressureTool(srv)
	s.registerMomentumTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// enrich installs the tenant scope and pins the request clock, mirroring
// what the HTTP middleware does for that transport.
func (s *Service) enrich(tenantID string) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		ctx = kit.WithTenantID(ctx, tenantID)
		return kit.WithNow(ctx, s.clock.Now())
	}
}

func (s *Service) registerVolatilityTool(srv *mcp.Server) {
	type req struct {
		TenantID string `json:"tenant_id"`
		QueryID  string `json:"query_id"`
		Window   int    `json:"window_days"`
	}

	tool := &mcp.Tool{
		Name:        "vigie_volatility",
		Description: "Volatility profile and regime for one tracked query",
		InputSchema: inputSchema(map[string]any{
			"tenant_id":   map[string]any{"type": "string", "description": "Tenant ID"},
			"query_id":    map[string]any{"type": "string", "description": "Tracked query ID"},
			"window_days": map[string]any{"type": "integer", "description": "Window in days (optional)"},
		}, []string{"tenant_id", "query_id"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		return s.Volatility(ctx, kit.GetTenantID(ctx), p.QueryID, p.Window)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, s.decodeTenantReq(func() any { return &req{} }, func(r any) string { return r.(*req).TenantID }))
}

func (s *Service) registerRiskTool(srv *mcp.Server) {
	type req struct {
		TenantID string `json:"tenant_id"`
		Window   int    `json:"window_days"`
	}

	tool := &mcp.Tool{
		Name:        "vigie_risk_index",
		Description: "Project-wide risk concentration across a tenant's tracked queries",
		InputSchema: inputSchema(map[string]any{
			"tenant_id":   map[string]any{"type": "string", "description": "Tenant ID"},
			"window_days": map[string]any{"type": "integer", "description": "Window in days (optional)"},
		}, []string{"tenant_id"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		return s.RiskIndex(ctx, kit.GetTenantID(ctx), p.Window)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, s.decodeTenantReq(func() any { return &req{} }, func(r any) string { return r.(*req).TenantID }))
}

func (s *Service) registerPressureTool(srv *mcp.Server) {
	type req struct {
		TenantID string `json:"tenant_id"`
		Window   int    `json:"window_days"`
		Limit    int    `json:"limit"`
	}

	tool := &mcp.Tool{
		Name:        "vigie_pressure",
		Description: "Cross-query competitive pressure within a mandatory bounded window",
		InputSchema: inputSchema(map[string]any{
			"tenant_id":   map[string]any{"type": "string", "description": "Tenant ID"},
			"window_days": map[string]any{"type": "integer", "description": "Window in days (mandatory, 1-90)"},
			"limit":       map[string]any{"type": "integer", "description": "Max URLs returned (optional)"},
		}, []string{"tenant_id", "window_days"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		return s.Pressure(ctx, kit.GetTenantID(ctx), p.Window, p.Limit)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, s.decodeTenantReq(func() any { return &req{} }, func(r any) string { return r.(*req).TenantID }))
}

func (s *Service) registerMomentumTool(srv *mcp.Server) {
	type req struct {
		TenantID string `json:"tenant_id"`
		QueryID  string `json:"query_id"`
	}

	tool := &mcp.Tool{
		Name:        "vigie_momentum",
		Description: "Score momentum across two adjacent 30-day windows for one tracked query",
		InputSchema: inputSchema(map[string]any{
			"tenant_id": map[string]any{"type": "string", "description": "Tenant ID"},
			"query_id":  map[string]any{"type": "string", "description": "Tracked query ID"},
		}, []string{"tenant_id", "query_id"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		return s.Momentum(ctx, kit.GetTenantID(ctx), p.QueryID)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, s.decodeTenantReq(func() any { return &req{} }, func(r any) string { return r.(*req).TenantID }))
}

// decodeTenantReq builds the standard decode function: unmarshal the typed
// request and enrich the context with its tenant scope and a pinned clock.
func (s *Service) decodeTenantReq(newReq func() any, tenantOf func(any) string) func(*mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	return func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		p := newReq()
		if err := json.Unmarshal(r.Params.Arguments, p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{
			Request:   p,
			EnrichCtx: s.enrich(tenantOf(p)),
		}, nil
	}
}
