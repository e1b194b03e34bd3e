package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissingSecret = errors.New("auth: missing signing secret")
	ErrTokenWeakSecret    = errors.New("auth: signing secret too short")
	ErrTokenInvalid       = errors.New("auth: invalid token")
	ErrTokenExpired       = errors.New("auth: token expired")
)

// MinSecretLength is the minimum accepted HMAC secret length.
const MinSecretLength = 32

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 10 * time.Hour

const tokenIssuer = "peergram"

// TokenService signs and verifies stateless session tokens. A token is a
// signed claim over a principal ID with an absolute expiry; there is no
// server-side revocation, so a leaked token stays usable until it expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithTTL overrides the token lifetime.
func WithTTL(d time.Duration) TokenOption {
	return func(s *TokenService) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithNowFunc injects a deterministic clock for tests.
func WithNowFunc(fn func() time.Time) TokenOption {
	return func(s *TokenService) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewTokenService builds a TokenService signing with HS256 over the given
// process-wide secret.
func NewTokenService(secret []byte, opts ...TokenOption) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrTokenMissingSecret
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrTokenWeakSecret, MinSecretLength)
	}
	s := &TokenService{
		secret: append([]byte(nil), secret...),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Issue mints a signed token whose subject is the principal ID.
func (s *TokenService) Issue(ctx context.Context, principalID string) (string, error) {
	if err := contextError(ctx); err != nil {
		return "", err
	}
	if principalID == "" {
		return "", fmt.Errorf("%w: empty principal id", ErrTokenInvalid)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   principalID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: token signing failed: %w", err)
	}
	return signed, nil
}

// Verify checks the signature before inspecting any claim, then the
// expiry, and returns the embedded principal ID. Tampering and expiry are
// distinguished only for callers that ask via errors.Is; both must surface
// as Unauthorized at the edge.
func (s *TokenService) Verify(ctx context.Context, raw string) (string, error) {
	if err := contextError(ctx); err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		// Pin the algorithm so an attacker cannot downgrade to "none".
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
