package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubPrincipal struct{ id string }

func (p stubPrincipal) PrincipalID() string { return p.id }

type stubResolver struct {
	principal Principal
	err       error
	calls     int
}

func (r *stubResolver) ResolvePrincipal(_ context.Context, _ string) (Principal, error) {
	r.calls++
	return r.principal, r.err
}

type stubVerifier struct {
	principalID string
	err         error
}

func (v stubVerifier) Verify(_ context.Context, _ string) (string, error) {
	return v.principalID, v.err
}

func invokeGateway(t *testing.T, g *Gateway, header string) (*httptest.ResponseRecorder, Principal, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var attached Principal
	var invoked bool
	err := g.Middleware()(func(c echo.Context) error {
		invoked = true
		attached, _ = PrincipalFromContext(c)
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, attached, invoked
}

func TestNewGatewayRequiresDependencies(t *testing.T) {
	if _, err := NewGateway(nil, &stubResolver{}); err == nil {
		t.Fatalf("expected error without verifier")
	}
	if _, err := NewGateway(stubVerifier{}, nil); err == nil {
		t.Fatalf("expected error without resolver")
	}
}

func TestGatewayAttachesPrincipal(t *testing.T) {
	resolver := &stubResolver{principal: stubPrincipal{id: "user-1"}}
	g, err := NewGateway(stubVerifier{principalID: "user-1"}, resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, attached, invoked := invokeGateway(t, g, "Bearer some-token")
	if !invoked {
		t.Fatalf("expected handler to run, got status %d", rec.Code)
	}
	if attached == nil || attached.PrincipalID() != "user-1" {
		t.Fatalf("expected principal user-1 on context, got %v", attached)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected exactly one resolve, got %d", resolver.calls)
	}
}

func TestGatewayMissingToken(t *testing.T) {
	g, _ := NewGateway(stubVerifier{principalID: "user-1"}, &stubResolver{principal: stubPrincipal{id: "user-1"}})

	rec, _, invoked := invokeGateway(t, g, "")
	if invoked {
		t.Fatalf("handler must not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGatewayMalformedHeader(t *testing.T) {
	g, _ := NewGateway(stubVerifier{principalID: "user-1"}, &stubResolver{principal: stubPrincipal{id: "user-1"}})

	for _, header := range []string{"Basic abc", "Bearer", "Bearer   "} {
		rec, _, invoked := invokeGateway(t, g, header)
		if invoked || rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 short-circuit, got %d", header, rec.Code)
		}
	}
}

func TestGatewayInvalidToken(t *testing.T) {
	resolver := &stubResolver{principal: stubPrincipal{id: "user-1"}}
	g, _ := NewGateway(stubVerifier{err: ErrTokenInvalid}, resolver)

	rec, _, invoked := invokeGateway(t, g, "Bearer bad")
	if invoked || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
	if resolver.calls != 0 {
		t.Fatalf("resolver must not run for invalid tokens")
	}
}

func TestGatewayExpiredToken(t *testing.T) {
	g, _ := NewGateway(stubVerifier{err: ErrTokenExpired}, &stubResolver{})

	rec, _, invoked := invokeGateway(t, g, "Bearer old")
	if invoked || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestGatewayPrincipalGone(t *testing.T) {
	g, _ := NewGateway(stubVerifier{principalID: "user-1"}, &stubResolver{err: ErrPrincipalGone})

	rec, _, invoked := invokeGateway(t, g, "Bearer token")
	if invoked || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when principal vanished, got %d", rec.Code)
	}
}

func TestGatewayResolverFailure(t *testing.T) {
	g, _ := NewGateway(stubVerifier{principalID: "user-1"}, &stubResolver{err: errors.New("storage down")})

	rec, _, invoked := invokeGateway(t, g, "Bearer token")
	if invoked || rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on resolver failure, got %d", rec.Code)
	}
}

func TestGatewayCustomExtractor(t *testing.T) {
	resolver := &stubResolver{principal: stubPrincipal{id: "user-1"}}
	g, _ := NewGateway(stubVerifier{principalID: "user-1"}, resolver,
		WithExtractor(func(r *http.Request) (string, error) {
			return r.Header.Get("X-Session"), nil
		}),
	)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session", "token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var invoked bool
	if err := g.Middleware()(func(c echo.Context) error {
		invoked = true
		return nil
	})(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !invoked {
		t.Fatalf("expected handler invocation via custom extractor")
	}
}

func TestBearerTokenExtractor(t *testing.T) {
	extract := BearerTokenExtractor()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := extract(req); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}

	req.Header.Set("Authorization", "bearer abc123")
	token, err := extract(req)
	if err != nil || token != "abc123" {
		t.Fatalf("expected case-insensitive scheme, got %q, %v", token, err)
	}
}
