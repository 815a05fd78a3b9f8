package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestParseTokenInfo_JWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signedToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	info := ParseTokenInfo(tok)
	assert.True(t, info.IsJWT)
	assert.Equal(t, "u1", info.Subject)
	assert.True(t, exp.Equal(info.ExpiresAt))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Second)))
}

func TestParseTokenInfo_Opaque(t *testing.T) {
	info := ParseTokenInfo("not.a.jwt")
	assert.False(t, info.IsJWT)
	assert.False(t, info.Expired(time.Now()), "no expiry means never expired")

	assert.Equal(t, TokenInfo{}, ParseTokenInfo(""))
}

func TestSnapshot(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	info, err := Snapshot(ctx, s)
	require.NoError(t, err)
	assert.False(t, info.HasToken())
	assert.Nil(t, info.User)

	tok := signedToken(t, jwt.RegisteredClaims{Subject: "u1"})
	require.NoError(t, s.Set(ctx, KeyAPIToken, tok))
	require.NoError(t, s.Set(ctx, KeyToken, "from-page"))
	require.NoError(t, SaveUser(ctx, s, []byte(`{"id":"u1","name":"Bob"}`)))

	info, err = Snapshot(ctx, s)
	require.NoError(t, err)
	assert.True(t, info.HasToken())
	assert.Equal(t, "from-page", info.QueryToken)
	assert.Equal(t, "u1", info.Subject)
	assert.Equal(t, "Bob", info.User["name"])
}
