package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost the rest of the stack was provisioned
// for; raise it only together with a rehash-on-login strategy.
const DefaultBcryptCost = 10

// Hasher produces and verifies salted one-way password digests.
type Hasher struct {
	cost int
}

// HasherOption configures a Hasher.
type HasherOption func(*Hasher)

// WithCost overrides the bcrypt cost factor. Out-of-range values are ignored.
func WithCost(cost int) HasherOption {
	return func(h *Hasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// NewHasher creates a bcrypt-backed password hasher.
func NewHasher(opts ...HasherOption) *Hasher {
	h := &Hasher{cost: DefaultBcryptCost}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Hash derives a salted digest from the plaintext. Two calls with the same
// input yield different digests; equality never holds at the digest level.
func (h *Hasher) Hash(ctx context.Context, plain string) (string, error) {
	if err := contextError(ctx); err != nil {
		return "", err
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("auth: bcrypt hash failed: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches the stored digest. A malformed
// digest verifies false through the same code path as a wrong password;
// callers cannot distinguish the two, by timing or by error.
func (h *Hasher) Verify(ctx context.Context, plain, digest string) bool {
	if err := contextError(ctx); err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

func contextError(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
