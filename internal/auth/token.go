package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// RoundClaims grants control of one round.
type RoundClaims struct {
	RoundID string `json:"round_id"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 round tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for roundID and its expiry.
func (i *Issuer) Issue(roundID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(i.ttl)
	claims := RoundClaims{
		RoundID: roundID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   roundID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign round token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks the signature and expiry and returns the round id.
func (i *Issuer) Verify(token string) (string, error) {
	claims := &RoundClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.RoundID == "" {
		return "", ErrInvalidToken
	}
	return claims.RoundID, nil
}
