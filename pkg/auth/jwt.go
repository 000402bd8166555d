// Package auth signs and verifies the bearer tokens handed out by POST /jwt.
//
// A token carries whatever identity payload the client supplied (at minimum
// an email) plus iat/exp. Nothing is persisted: verification is signature
// and expiry only.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when no token was presented.
	ErrMissingToken = errors.New("auth: missing token")
	// ErrInvalidToken covers bad signatures, malformed tokens and expiry.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrEmptyKey is returned when an Issuer has no signing key.
	ErrEmptyKey = errors.New("auth: empty signing key")
)

// Identity is the decoded, verified token.
type Identity struct {
	Email     string
	Claims    map[string]any // the original payload, minus iat/exp
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 tokens with a process-wide key.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewIssuer returns an Issuer. ttl is the validity window of every token.
func NewIssuer(key string, ttl time.Duration) (*Issuer, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Issuer{key: []byte(key), ttl: ttl, now: time.Now}, nil
}

// WithClock swaps the time source. Used by tests to mint expired tokens.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

// TTL returns the token validity window.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs payload. Any iat/exp keys in payload are overwritten.
func (i *Issuer) Issue(payload map[string]any) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}

	now := i.now()
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(i.ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("auth: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns its identity.
func (i *Issuer) Verify(raw string) (*Identity, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := &Identity{Claims: make(map[string]any, len(claims))}
	for k, v := range claims {
		if k == "iat" || k == "exp" {
			continue
		}
		id.Claims[k] = v
	}
	id.Email, _ = claims["email"].(string)

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		id.IssuedAt = iat.Time
	}
	return id, nil
}
