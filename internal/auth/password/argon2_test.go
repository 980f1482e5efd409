package password

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	h := NewDefault()

	enc, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(enc, "$argon2id$") {
		t.Fatalf("encoded hash = %q, want argon2id format", enc)
	}

	ok, err := h.Verify("s3cret", enc)
	if err != nil || !ok {
		t.Fatalf("verify own password: ok=%v err=%v", ok, err)
	}
	ok, err = h.Verify("wrong", enc)
	if err != nil {
		t.Fatalf("verify wrong password: %v", err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}
}

func TestVerify_CorruptHashIsError(t *testing.T) {
	h := NewDefault()
	if _, err := h.Verify("x", "not-a-hash"); err == nil {
		t.Fatal("expected error for corrupt stored hash")
	}
}

func TestHash_NoParams(t *testing.T) {
	var h *Hasher
	if _, err := h.Hash("x"); err == nil {
		t.Fatal("expected error for nil hasher")
	}
}
