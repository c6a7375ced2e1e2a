// Package jwttest signs HS256 bearer tokens for handler and middleware tests.
package jwttest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sign returns a token with the given subject and role claims. A negative ttl yields an expired token.
func Sign(t testing.TB, secret []byte, subject, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}
