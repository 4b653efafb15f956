package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned when a token cannot be decoded at all.
var ErrMalformed = errors.New("token: malformed token")

// Pair holds the access and refresh tokens issued by the backend. It is
// persisted as a single unit.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Claims carries the subset of access-token claims the terminal acts on.
// Claims are always derived from the raw token, never stored on their own.
type Claims struct {
	UserID    int64
	ExpiresAt time.Time
}

type rawClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// ExpiryLeeway is subtracted from the claimed validity window so a token
// is dropped slightly before the server would start rejecting it.
const ExpiryLeeway = 5 * time.Second

// Decode extracts claims from an access token without verifying its
// signature. The terminal holds no signing secret; the claimed expiry is a
// scheduling hint and the server stays the authority on validity.
func Decode(raw string) (*Claims, error) {
	var rc rawClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &rc); err != nil {
		return nil, ErrMalformed
	}
	if rc.ExpiresAt == nil {
		return nil, ErrMalformed
	}
	return &Claims{
		UserID:    rc.UserID,
		ExpiresAt: rc.ExpiresAt.Time,
	}, nil
}

// ExpiredAt reports whether the token should no longer be presented at the
// given instant.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt.Add(-ExpiryLeeway))
}

// Expired reports whether the token should no longer be presented now.
func (c *Claims) Expired() bool {
	return c.ExpiredAt(time.Now())
}
