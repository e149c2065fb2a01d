// AngelaMos | 2026
// repository_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/herooiboo/tenjaz/internal/core"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}

	db := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCreateToken(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO personal_access_tokens`).
		WithArgs(int64(7), "hash", "agent", "10.0.0.1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(42), now))

	token := &Token{
		UserID:    7,
		TokenHash: "hash",
		UserAgent: "agent",
		IPAddress: "10.0.0.1",
	}
	if err := repo.Create(context.Background(), token); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if token.ID != 42 {
		t.Errorf("id = %d; want 42", token.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindByHash_NotFound(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM personal_access_tokens WHERE token_hash = \$1`).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "token_hash", "user_agent", "ip_address",
			"created_at", "last_used_at",
		}))

	_, err := repo.FindByHash(context.Background(), "unknown")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestDeleteByHash_ReportsWhetherRevoked(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM personal_access_tokens WHERE user_id = \$1 AND token_hash = \$2`).
		WithArgs(int64(7), "hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	revoked, err := repo.DeleteByHash(context.Background(), 7, "hash")
	if err != nil {
		t.Fatalf("DeleteByHash returned error: %v", err)
	}
	if !revoked {
		t.Error("expected revoked = true")
	}

	mock.ExpectExec(`DELETE FROM personal_access_tokens WHERE user_id = \$1 AND token_hash = \$2`).
		WithArgs(int64(7), "hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	revoked, err = repo.DeleteByHash(context.Background(), 7, "hash")
	if err != nil {
		t.Fatalf("repeated DeleteByHash returned error: %v", err)
	}
	if revoked {
		t.Error("expected revoked = false on repeat")
	}
}

func TestDeleteAllForUser(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM personal_access_tokens WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	revoked, err := repo.DeleteAllForUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("DeleteAllForUser returned error: %v", err)
	}
	if !revoked {
		t.Error("expected revoked = true")
	}
}
