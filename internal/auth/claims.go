package auth

import (
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/storefront/internal/domain"
)

// roleClaims is the subset of the credential payload the client reads.
type roleClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeRole extracts the role claim from a credential without verifying
// its signature. It is best-effort: any failure (malformed token, missing
// payload, absent claim) yields ok=false, never an error. The result gates
// UI only; it must never be treated as an authorization decision.
func DecodeRole(token string) (domain.Role, bool) {
	if token == "" {
		return "", false
	}

	claims := &roleClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}
	if claims.Role == "" {
		return "", false
	}
	return domain.Role(claims.Role), true
}
