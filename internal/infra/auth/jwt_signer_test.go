package auth

import (
	"errors"
	"testing"
	"time"

	"twinpersona/internal/domain"
)

func TestJWTSigner_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewJWTSigner("test-secret")
	if err != nil {
		t.Fatalf("NewJWTSigner: %v", err)
	}

	signed, err := s.Sign("jti-1", "pi_123", "user@example.com", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	jti, err := s.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if jti != "jti-1" {
		t.Fatalf("expected jti-1, got %q", jti)
	}
}

func TestJWTSigner_RejectsExpired(t *testing.T) {
	t.Parallel()

	s, _ := NewJWTSigner("test-secret")
	signed, err := s.Sign("jti-2", "pi_123", "", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := s.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTSigner_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	a, _ := NewJWTSigner("secret-a")
	b, _ := NewJWTSigner("secret-b")

	signed, err := a.Sign("jti-3", "pi_123", "", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := b.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTSigner_RejectsGarbage(t *testing.T) {
	t.Parallel()

	s, _ := NewJWTSigner("test-secret")
	if _, err := s.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
