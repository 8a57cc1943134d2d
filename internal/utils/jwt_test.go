package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/imontoya/soporte-tickets/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	tok, err := NewAccessToken(secret, 42, model.RolAdmin)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if remaining := time.Until(tok.Exp); remaining < 23*time.Hour {
		t.Fatalf("expiry too close: %v remaining", remaining)
	}

	claims, err := ParseAccessToken(secret, tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims.UsuarioID != 42 {
		t.Fatalf("usuario id mismatch: got %d want 42", claims.UsuarioID)
	}
	if claims.Rol != model.RolAdmin {
		t.Fatalf("rol mismatch: got %q want %q", claims.Rol, model.RolAdmin)
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	t.Parallel()

	secret := "secret"
	signed := signTestToken(t, secret, jwt.MapClaims{
		"sub": 7,
		"rol": string(model.RolUsuario),
		"exp": time.Now().UTC().Add(-time.Minute).Unix(),
	})

	_, err := ParseAccessToken(secret, signed)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("right-secret", 7, model.RolUsuario)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	_, err = ParseAccessToken("wrong-secret", tok.Token)
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestParseAccessToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseAccessToken("k", "not.a.jwt")
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestParseAccessToken_UnknownRole(t *testing.T) {
	t.Parallel()

	secret := "secret"
	signed := signTestToken(t, secret, jwt.MapClaims{
		"sub": 7,
		"rol": "superuser",
		"exp": time.Now().UTC().Add(time.Hour).Unix(),
	})

	_, err := ParseAccessToken(secret, signed)
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for unknown role, got %v", err)
	}
}

func TestParseAccessToken_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := "secret"
	signed := signTestToken(t, secret, jwt.MapClaims{
		"rol": string(model.RolUsuario),
		"exp": time.Now().UTC().Add(time.Hour).Unix(),
	})

	_, err := ParseAccessToken(secret, signed)
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for missing sub, got %v", err)
	}
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}
