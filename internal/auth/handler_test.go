// AngelaMos | 2026
// handler_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/herooiboo/tenjaz/internal/core"
)

func passthrough(next http.Handler) http.Handler {
	return next
}

func loginRouter(t *testing.T, accounts *mockAccounts) chi.Router {
	t.Helper()

	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, token *Token) error {
			token.ID = 1
			return nil
		},
	}

	svc := NewService(repo, accounts, "username", testLogger())
	handler := NewHandler(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, passthrough, passthrough)
	return r
}

func postLogin(t *testing.T, router chi.Router, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	body := `{"username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// An unknown username and a wrong password must produce the same HTTP
// answer so the login endpoint cannot be used to enumerate accounts.
func TestLoginHandler_UnknownAccountIndistinguishable(t *testing.T) {
	unknown := loginRouter(t, &mockAccounts{
		FindAccountByFieldFunc: func(ctx context.Context, field, value string) (*Account, error) {
			return nil, core.ErrNotFound
		},
	})

	account := activeAccount(t, "hunter2hunter2")
	known := loginRouter(t, &mockAccounts{
		FindAccountByFieldFunc: func(ctx context.Context, field, value string) (*Account, error) {
			return account, nil
		},
	})

	ghostRec := postLogin(t, unknown, "ghost", "whatever123")
	wrongRec := postLogin(t, known, "meriem", "not-the-password")

	if ghostRec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown account status = %d; want 401", ghostRec.Code)
	}
	if wrongRec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d; want 401", wrongRec.Code)
	}
	if ghostRec.Body.String() != wrongRec.Body.String() {
		t.Fatalf("bodies differ:\nunknown: %s\nwrong:   %s",
			ghostRec.Body.String(), wrongRec.Body.String())
	}
}

func TestLoginHandler_InactiveAccount(t *testing.T) {
	account := activeAccount(t, "hunter2hunter2")
	account.IsActive = false

	router := loginRouter(t, &mockAccounts{
		FindAccountByFieldFunc: func(ctx context.Context, field, value string) (*Account, error) {
			return account, nil
		},
	})

	rec := postLogin(t, router, "meriem", "hunter2hunter2")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d; want 403", rec.Code)
	}

	var envelope struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if envelope.Success {
		t.Fatal("success = true; want false")
	}
}
