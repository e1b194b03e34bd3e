package auth

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasherHashIsSalted(t *testing.T) {
	h := NewHasher(WithCost(bcrypt.MinCost))
	ctx := context.Background()

	first, err := h.Hash(ctx, "Abcdef1!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := h.Hash(ctx, "Abcdef1!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct digests for identical plaintexts")
	}
}

func TestHasherVerify(t *testing.T) {
	h := NewHasher(WithCost(bcrypt.MinCost))
	ctx := context.Background()

	digest, err := h.Hash(ctx, "Abcdef1!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !h.Verify(ctx, "Abcdef1!", digest) {
		t.Fatalf("expected matching password to verify")
	}
	if h.Verify(ctx, "Abcdef1?", digest) {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestHasherVerifyMalformedDigest(t *testing.T) {
	h := NewHasher()
	ctx := context.Background()

	for _, digest := range []string{"", "not-a-digest", "$2a$broken"} {
		if h.Verify(ctx, "Abcdef1!", digest) {
			t.Fatalf("malformed digest %q verified", digest)
		}
	}
}

func TestHasherCostClamped(t *testing.T) {
	h := NewHasher(WithCost(999))
	if h.cost != DefaultBcryptCost {
		t.Fatalf("out-of-range cost should be ignored, got %d", h.cost)
	}
}

func TestHasherCancelledContext(t *testing.T) {
	h := NewHasher(WithCost(bcrypt.MinCost))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "Abcdef1!"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if h.Verify(ctx, "Abcdef1!", "whatever") {
		t.Fatalf("expected cancelled verify to fail")
	}
}
