// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/herooiboo/tenjaz/internal/core"
)

type mockVerifier struct {
	VerifyTokenFunc func(ctx context.Context, token string) (*TokenClaims, error)
}

func (m *mockVerifier) VerifyToken(ctx context.Context, token string) (*TokenClaims, error) {
	return m.VerifyTokenFunc(ctx, token)
}

func okHandler(t *testing.T, claims **TokenClaims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims != nil {
			*claims = &TokenClaims{
				UserID:  GetUserID(r.Context()),
				Tier:    GetUserTier(r.Context()),
				TokenID: GetTokenID(r.Context()),
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator_MissingToken(t *testing.T) {
	verifier := &mockVerifier{
		VerifyTokenFunc: func(ctx context.Context, token string) (*TokenClaims, error) {
			t.Fatal("verifier should not be called without a token")
			return nil, nil
		},
	}

	handler := Authenticator(verifier)(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rec.Code)
	}
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	verifier := &mockVerifier{
		VerifyTokenFunc: func(ctx context.Context, token string) (*TokenClaims, error) {
			return nil, core.ErrTokenInvalid
		},
	}

	handler := Authenticator(verifier)(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rec.Code)
	}
}

func TestAuthenticator_PopulatesContext(t *testing.T) {
	verifier := &mockVerifier{
		VerifyTokenFunc: func(ctx context.Context, token string) (*TokenClaims, error) {
			if token != "valid-token" {
				t.Errorf("token = %q", token)
			}
			return &TokenClaims{UserID: 7, Tier: "gold", TokenID: 42}, nil
		},
	}

	var seen *TokenClaims
	handler := Authenticator(verifier)(okHandler(t, &seen))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if seen == nil {
		t.Fatal("inner handler not reached")
	}
	if seen.UserID != 7 || seen.Tier != "gold" || seen.TokenID != 42 {
		t.Errorf("claims = %+v", seen)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	verifier := &mockVerifier{
		VerifyTokenFunc: func(ctx context.Context, token string) (*TokenClaims, error) {
			t.Fatal("verifier should not be called without a token")
			return nil, nil
		},
	}

	var seen *TokenClaims
	handler := OptionalAuth(verifier)(okHandler(t, &seen))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if seen.UserID != 0 || seen.Tier != "" {
		t.Errorf("expected anonymous context, got %+v", seen)
	}
}

func TestOptionalAuth_BadTokenStillPassesThrough(t *testing.T) {
	verifier := &mockVerifier{
		VerifyTokenFunc: func(ctx context.Context, token string) (*TokenClaims, error) {
			return nil, core.ErrTokenInvalid
		},
	}

	handler := OptionalAuth(verifier)(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want 200", rec.Code)
	}
}

func TestRejectAuthenticated(t *testing.T) {
	verifier := &mockVerifier{
		VerifyTokenFunc: func(ctx context.Context, token string) (*TokenClaims, error) {
			return &TokenClaims{UserID: 7}, nil
		},
	}

	handler := RejectAuthenticated(verifier)(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d; want 403", rec.Code)
	}

	// Without a token the guest route is reachable.
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want 200", rec.Code)
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"absent", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"case insensitive scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := ExtractToken(req); got != tt.want {
				t.Errorf("ExtractToken = %q; want %q", got, tt.want)
			}
		})
	}
}
