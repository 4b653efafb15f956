package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, userID int64, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"token_type": "access",
		"user_id":    userID,
		"exp":        exp.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestDecode(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	raw := signTestToken(t, 42, exp)

	claims, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeMissingExpiry(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1})
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = Decode(raw)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestExpiredAt(t *testing.T) {
	now := time.Now()
	claims := &Claims{UserID: 1, ExpiresAt: now.Add(time.Minute)}

	assert.False(t, claims.ExpiredAt(now))
	// Leeway kicks in before the claimed instant.
	assert.True(t, claims.ExpiredAt(now.Add(time.Minute-ExpiryLeeway)))
	assert.True(t, claims.ExpiredAt(now.Add(2*time.Minute)))
}
