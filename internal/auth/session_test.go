package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, c Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestParse_ReadsUserAndExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := sign(t, Claims{UserID: 7, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}})

	s, err := Parse(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.UserID != 7 {
		t.Errorf("expected user 7, got %d", s.UserID)
	}
	if !s.ExpiresAt.Equal(exp) {
		t.Errorf("expected expiry %v, got %v", exp, s.ExpiresAt)
	}
	if s.Expired(time.Now()) {
		t.Error("token should not be expired yet")
	}
	if !s.Expired(exp.Add(time.Second)) {
		t.Error("token should be expired after exp")
	}
}

func TestParse_NoExpiryNeverExpires(t *testing.T) {
	s, err := Parse(sign(t, Claims{UserID: 1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Expired(time.Now().Add(100 * 365 * 24 * time.Hour)) {
		t.Error("token without exp must not expire")
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
	if _, err := Parse("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}
