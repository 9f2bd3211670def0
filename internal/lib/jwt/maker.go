// Package jwt implements generation and parsing of the JWT tokens the
// API hands out at login.
package jwt

import (
	"time"
)

// Maker generates and validates JWT tokens carrying username and role.
type Maker interface {
	// GenerateToken issues a signed token for a user.
	GenerateToken(username, role string) (string, error)
	// ParseToken validates a token and returns its claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker with an HS256 secret key and a token TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker creates a MakerImpl from a secret key and TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
