package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/docket-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.GenerateToken("42", domain.RoleStudent)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 59*time.Minute {
		t.Fatalf("unexpected expiry: %v", expiresAt)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Subject != "42" || claims.Role != domain.RoleStudent {
		t.Fatalf("unexpected claims: sub=%q role=%q", claims.Subject, claims.Role)
	}
}

func TestTokenExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := tm.GenerateToken("42", domain.RoleStudent)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := tm.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-one", time.Hour).GenerateToken("42", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := NewTokenManager("secret-two", time.Hour).ParseToken(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.ParseToken("not.a.jwt"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
