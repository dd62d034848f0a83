// Package auth inspects the bearer token the storefront backend issues on
// login and registration.
//
// The client never verifies the signature — it has no key, and the backend
// re-checks the token on every call anyway. Claims are parsed only to know
// who the token says we are and when it stops being worth sending.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the typed JWT payload issued by the backend.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken decodes the claims from a backend-issued token without
// verifying the signature.
func ParseToken(t string) (*Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(t, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// ExpiresAt returns the token's expiry time, or the zero time when the token
// is unparsable or carries no expiry.
func ExpiresAt(t string) time.Time {
	claims, err := ParseToken(t)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// Expired reports whether the token's expiry has passed. Tokens without an
// expiry claim are treated as not expired — the backend has the last word.
func Expired(t string) bool {
	exp := ExpiresAt(t)
	return !exp.IsZero() && time.Now().After(exp)
}
