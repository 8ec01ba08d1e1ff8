package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hazyhaar/vigie/kit"
)

type claimsKey struct{}

// Middleware extracts a JWT from the "token" cookie (preferred) or the
// Authorization Bearer header. If valid, the parsed TenantClaims are stored
// in the request context along with kit.TenantIDKey and kit.RoleKey.
// Invalid or missing tokens are silently ignored — use RequireTenant to
// enforce.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			if c, err := r.Cookie("token"); err == nil && c.Value != "" {
				tokenStr = c.Value
			}
			if tokenStr == "" {
				if h := r.Header.Get("Authorization"); len(h) > 7 && h[:7] == "Bearer " {
					tokenStr = h[7:]
				}
			}
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := ValidateToken(secret, tokenStr)
			if err != nil {
				http.SetCookie(w, &http.Cookie{Name: "token", MaxAge: -1, Path: "/"})
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, claimsKey{}, claims)
			ctx = kit.WithTenantID(ctx, claims.TenantID)
			ctx = kit.WithRole(ctx, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims retrieves the TenantClaims from the context, or nil if absent.
func GetClaims(ctx context.Context) *TenantClaims {
	c, _ := ctx.Value(claimsKey{}).(*TenantClaims)
	return c
}

// RequireTenant rejects requests whose context carries no resolved tenant.
// API-only service, so the answer is a JSON 401 rather than a redirect.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := GetClaims(r.Context())
		if c == nil || c.TenantID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
