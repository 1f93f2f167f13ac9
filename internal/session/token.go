package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/songhub/internal/shared"
	"github.com/golang-jwt/jwt/v4"
)

// TokenInfo describes the readable parts of a held token.
//
// Claims are decoded without verifying the signature; the client has no key and never trusts them.
type TokenInfo struct {
	JWT       bool       `json:"jwt"`
	UserID    string     `json:"user_id,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	Expired   bool       `json:"expired"`
}

// Inspect decodes token as a JWT when possible. Opaque tokens return a zero [TokenInfo] with JWT false.
func Inspect(token string, now time.Time) (TokenInfo, error) {
	if token == "" {
		return TokenInfo{}, fmt.Errorf("%w: no token held", shared.ErrNotAuthenticated)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, nil
	}

	info := TokenInfo{JWT: true}
	switch id := claims["user_id"].(type) {
	case string:
		info.UserID = id
	case float64:
		info.UserID = strconv.FormatInt(int64(id), 10)
	}
	if sub, ok := claims["sub"].(string); ok {
		info.Subject = sub
	}
	if exp := numericTime(claims["exp"]); exp != nil {
		info.ExpiresAt = exp
		info.Expired = now.After(*exp)
	}
	info.IssuedAt = numericTime(claims["iat"])
	return info, nil
}

func numericTime(v any) *time.Time {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	t := time.Unix(int64(f), 0).UTC()
	return &t
}
