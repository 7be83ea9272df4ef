package helpers

import (
	"testing"
	"time"
)

func newTestJWT(accessTTL time.Duration) *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", accessTTL, 24*time.Hour)
}

func TestJWTRoundTrip(t *testing.T) {
	m := newTestJWT(time.Hour)

	token, _, err := m.GenerateAccessToken("user-42")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("user id = %q, want user-42", claims.UserID)
	}
}

func TestJWTEncryptDecrypt(t *testing.T) {
	m := newTestJWT(time.Hour)

	token, err := m.Encrypt("user-7")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	subject, err := m.Decrypt(token)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if subject != "user-7" {
		t.Errorf("subject = %q, want user-7", subject)
	}
}

func TestJWTSecretsAreSeparate(t *testing.T) {
	m := newTestJWT(time.Hour)

	refresh, _, err := m.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := m.ParseAccessToken(refresh); err == nil {
		t.Error("refresh token must not parse as an access token")
	}
	if _, err := m.ParseRefreshToken(refresh); err != nil {
		t.Errorf("ParseRefreshToken: %v", err)
	}
}

func TestJWTExpired(t *testing.T) {
	m := newTestJWT(-time.Minute)

	token, _, err := m.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Error("expired token must not parse")
	}
}

func TestJWTTampered(t *testing.T) {
	m := newTestJWT(time.Hour)
	other := NewJWTManager("different-secret", "refresh-secret", time.Hour, time.Hour)

	token, _, err := other.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Error("token signed with a different secret must not parse")
	}
}
