package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	token, expires, err := auth.IssueToken(secret, userID, "he", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if !expires.After(time.Now()) {
		t.Error("expiry should be in the future")
	}

	gotID, gotLang, err := auth.ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if gotID != userID {
		t.Errorf("user id: got %s, want %s", gotID, userID)
	}
	if gotLang != "he" {
		t.Errorf("lang: got %q, want he", gotLang)
	}
}

func TestParseTokenRejects(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	valid, _, err := auth.IssueToken(secret, userID, "en", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	expired, _, err := auth.IssueToken(secret, userID, "en", -time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{"wrong secret", []byte("other-secret"), valid},
		{"expired token", secret, expired},
		{"garbage", secret, "not.a.token"},
		{"empty", secret, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := auth.ParseToken(tt.secret, tt.token); err == nil {
				t.Error("expected parse failure")
			}
		})
	}
}
