package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	m := New("super-secret", "toolkit-service", time.Hour)
	userID := uuid.New()

	raw, claims, err := m.Issue(context.Background(), userID, "mentor1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if claims.JTI == "" {
		t.Fatal("empty jti")
	}

	got, err := m.Parse(context.Background(), raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.UserID != userID || got.Login != "mentor1" || got.JTI != claims.JTI {
		t.Fatalf("claims mismatch: %+v", got)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	m := New("secret", "toolkit-service", -time.Second)
	raw, _, err := m.Issue(context.Background(), uuid.New(), "u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := m.Parse(context.Background(), raw); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	raw, _, err := New("right-secret", "toolkit-service", time.Hour).
		Issue(context.Background(), uuid.New(), "u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := New("wrong-secret", "toolkit-service", time.Hour).
		Parse(context.Background(), raw); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}
