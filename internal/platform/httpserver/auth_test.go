package httpserver

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthenticatorBearerToken(t *testing.T) {
	auth := NewAuthenticator("test-secret")

	r := httptest.NewRequest("GET", "/api/brands", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "user-1"))

	userID, ok := auth.UserID(r)
	if !ok || userID != "user-1" {
		t.Fatalf("expected user-1, got %q ok=%v", userID, ok)
	}
}

func TestAuthenticatorRejectsBadSignature(t *testing.T) {
	auth := NewAuthenticator("test-secret")

	r := httptest.NewRequest("GET", "/api/brands", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "user-1"))

	if _, ok := auth.UserID(r); ok {
		t.Fatal("expected token signed with wrong secret to be rejected")
	}
}

func TestAuthenticatorHeaderFallback(t *testing.T) {
	auth := NewAuthenticator("test-secret")

	r := httptest.NewRequest("GET", "/api/brands", nil)
	r.Header.Set("X-User-Id", "user-2")

	userID, ok := auth.UserID(r)
	if !ok || userID != "user-2" {
		t.Fatalf("expected header fallback user-2, got %q ok=%v", userID, ok)
	}

	if _, ok := auth.UserID(httptest.NewRequest("GET", "/api/brands", nil)); ok {
		t.Fatal("expected anonymous request to be rejected")
	}
}
