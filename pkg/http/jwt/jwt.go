// Package jwt issues and verifies the HS256 bearer tokens that guard the settings mutation routes.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "platform-settings"

var (
	ErrTokenExpired = jwt.ErrTokenExpired
	ErrEmptySecret  = errors.New("jwt: empty secret key")
)

// Claims carries the operator identity in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Operator returns the subject the token was issued to.
func (c *Claims) Operator() string {
	return c.Subject
}

// GenToken signs a token for subject valid for ttl. A negative ttl yields an already expired token.
func GenToken(subject string, secretKey []byte, ttl time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now.Add(min(ttl, 0))),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature, issuer and validity window.
// Expiry is reported as ErrTokenExpired so callers can distinguish it.
func ParseToken(raw, secretKey string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return []byte(secretKey), nil },
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, fmt.Errorf("invalid token: %w", err)
	}
}
