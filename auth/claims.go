package auth

import "github.com/golang-jwt/jwt/v5"

// TenantClaims is the JWT claims structure shared by all vigie services.
// It embeds jwt.RegisteredClaims for standard fields (exp, iat, etc.) and
// adds the tenant scope every request is resolved against. The tenant id in
// a validated token is the only tenant id the server ever trusts — request
// bodies and query strings never carry one.
type TenantClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}
