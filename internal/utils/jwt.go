package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single outcome for any token that fails
// verification. Bad signature, malformed payload and expiry all collapse
// into it so callers cannot tell which check failed.
var ErrInvalidToken = errors.New("invalid token")

// IdentityClaims is the snapshot of a user carried inside a session token.
// The snapshot is taken at issuance and is not refreshed on later profile
// or role changes; an old token keeps its stale fields until it expires.
type IdentityClaims struct {
	jwt.RegisteredClaims
	UserID   uint64  `json:"sub"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
}

// IsAdmin reports whether the snapshot carries the admin role.
func (c *IdentityClaims) IsAdmin() bool {
	return c.Role == "admin"
}

// IssueToken signs an HS256 JWT carrying the identity snapshot plus
// issued-at and expiry claims. ttl is 24h in production; tests pass
// shorter (or negative) values.
func IssueToken(secret string, id IdentityClaims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	id.IssuedAt = jwt.NewNumericDate(now)
	id.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, id)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the embedded
// snapshot. Any failure yields ErrInvalidToken.
func ParseToken(secret, raw string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
