package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo describes what can be read from a token without verifying it.
// Tokens are opaque to the SDK; when a token happens to be a JWT its subject
// and expiry are exposed for display.
type TokenInfo struct {
	IsJWT     bool
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (ti TokenInfo) Expired(now time.Time) bool {
	return !ti.ExpiresAt.IsZero() && now.After(ti.ExpiresAt)
}

// ParseTokenInfo parses token as an unverified JWT. Non-JWT tokens yield a
// zero TokenInfo.
func ParseTokenInfo(token string) TokenInfo {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{IsJWT: true}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}

// Info is a snapshot of the persisted session.
type Info struct {
	Token      string
	QueryToken string
	User       map[string]any
	TokenInfo
}

// HasToken reports whether a bearer token is persisted.
func (i Info) HasToken() bool {
	return i.Token != ""
}

// Snapshot reads the session keys from s.
func Snapshot(ctx context.Context, s Store) (Info, error) {
	token, err := s.Get(ctx, KeyAPIToken)
	if err != nil {
		return Info{}, err
	}
	queryToken, err := s.Get(ctx, KeyToken)
	if err != nil {
		return Info{}, err
	}
	user, err := LoadUser(ctx, s)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Token:      token,
		QueryToken: queryToken,
		User:       user,
		TokenInfo:  ParseTokenInfo(token),
	}, nil
}
