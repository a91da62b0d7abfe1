package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"

func TestGenAndParseToken(t *testing.T) {
	token, err := GenToken("admin", []byte(secret), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Operator())
	assert.Equal(t, issuer, claims.Issuer)
}

func TestGenToken_EmptySecret(t *testing.T) {
	_, err := GenToken("admin", nil, time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestParseToken_Rejected(t *testing.T) {
	valid, err := GenToken("admin", []byte(secret), time.Hour)
	require.NoError(t, err)
	expired, err := GenToken("admin", []byte(secret), -time.Minute)
	require.NoError(t, err)
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: issuer,
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		expired bool
	}{
		{name: "wrong secret", token: valid, secret: "other-secret"},
		{name: "expired", token: expired, secret: secret, expired: true},
		{name: "foreign issuer", token: foreign, secret: secret},
		{name: "missing expiry", token: noExpiry, secret: secret},
		{name: "garbage", token: "not-a-token", secret: secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, tt.secret)
			require.Error(t, err)
			assert.Equal(t, tt.expired, err == ErrTokenExpired)
		})
	}
}
