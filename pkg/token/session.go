package token

import (
	"time"

	"github.com/google/uuid"
)

// SessionClaims is the payload of a form-session token. It is
// deliberately content-free: a random identifier and an expiry, nothing
// that could identify a patient.
type SessionClaims struct {
	ID        string `json:"id"`
	ExpiresAt int64  `json:"exp"`
}

// NewSession mints claims for a fresh form session valid for ttl.
func NewSession(ttl time.Duration) SessionClaims {
	return SessionClaims{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
}

// Expired reports whether the session's validity window has passed.
func (c SessionClaims) Expired() bool {
	return time.Now().Unix() > c.ExpiresAt
}

// ParseSession verifies a session token and checks its expiry.
func ParseSession(tok string, secret string) (SessionClaims, error) {
	claims, err := Parse[SessionClaims](tok, secret)
	if err != nil {
		return SessionClaims{}, err
	}
	if claims.Expired() {
		return SessionClaims{}, ErrTokenExpired
	}
	return claims, nil
}
