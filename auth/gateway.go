package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

var (
	ErrTokenNotFound     = errors.New("auth: token not found")
	ErrTokenInvalidInput = errors.New("auth: invalid token source")
	ErrPrincipalGone     = errors.New("auth: principal no longer exists")
)

// Principal is the identity attached to an authenticated request.
type Principal interface {
	PrincipalID() string
}

// PrincipalResolver loads the principal record behind a verified token.
// The gateway performs exactly one resolve per request.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, id string) (Principal, error)
}

// TokenVerifier checks a raw token and returns the principal ID it names.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (string, error)
}

// TokenExtractor pulls a raw token out of a request.
type TokenExtractor func(*http.Request) (string, error)

const principalContextKey = "peergram/principal"

// Gateway is the authentication gate in front of protected routes: it
// extracts a bearer token, verifies it, resolves the principal, and fails
// closed with 401 on any defect. It never mutates state.
type Gateway struct {
	verifier  TokenVerifier
	resolver  PrincipalResolver
	extractor TokenExtractor
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithExtractor overrides how the raw token is pulled from the request.
func WithExtractor(fn TokenExtractor) GatewayOption {
	return func(g *Gateway) {
		if fn != nil {
			g.extractor = fn
		}
	}
}

// NewGateway builds a Gateway from a verifier and a resolver.
func NewGateway(verifier TokenVerifier, resolver PrincipalResolver, opts ...GatewayOption) (*Gateway, error) {
	if verifier == nil || resolver == nil {
		return nil, errors.New("auth: gateway requires a verifier and a resolver")
	}
	g := &Gateway{
		verifier:  verifier,
		resolver:  resolver,
		extractor: BearerTokenExtractor(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// Middleware returns the echo middleware enforcing the gate.
func (g *Gateway) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := g.extractor(c.Request())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			principalID, err := g.verifier.Verify(c.Request().Context(), raw)
			if err != nil {
				// Invalid signature and expiry both collapse to 401;
				// the distinction stays server-side.
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			principal, err := g.resolver.ResolvePrincipal(c.Request().Context(), principalID)
			if err != nil {
				if errors.Is(err, ErrPrincipalGone) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
			}

			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

// PrincipalFromContext returns the principal the gateway attached, if any.
func PrincipalFromContext(c echo.Context) (Principal, bool) {
	principal, ok := c.Get(principalContextKey).(Principal)
	return principal, ok
}

// BearerTokenExtractor reads the Authorization header in Bearer form.
func BearerTokenExtractor() TokenExtractor {
	return func(r *http.Request) (string, error) {
		header := r.Header.Get("Authorization")
		if header == "" {
			return "", ErrTokenNotFound
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", ErrTokenInvalidInput
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return "", ErrTokenInvalidInput
		}
		return token, nil
	}
}
