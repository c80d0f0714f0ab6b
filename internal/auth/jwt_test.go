package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	m := NewManager("test-secret")
	token, err := m.Sign("alice@example.com")
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	email, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if email != "alice@example.com" {
		t.Fatalf("expected embedded email, got %q", email)
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	m := NewManager("test-secret")
	_, err := m.Verify("")
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	signer := NewManager("one-secret")
	verifier := NewManager("another-secret")
	token, err := signer.Sign("alice@example.com")
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager("test-secret")
	claims := &Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	_, err = m.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := NewManager("test-secret")
	_, err := m.Verify("not.a.token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatal("expected password to match its hash")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Fatal("expected mismatched password to fail")
	}
}
