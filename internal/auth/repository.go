// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/herooiboo/tenjaz/internal/core"
)

type Repository interface {
	Create(ctx context.Context, token *Token) error
	FindByHash(ctx context.Context, tokenHash string) (*Token, error)
	ListForUser(ctx context.Context, userID int64) ([]Token, error)
	TouchLastUsed(ctx context.Context, tokenID int64) error
	DeleteByHash(ctx context.Context, userID int64, tokenHash string) (bool, error)
	DeleteByID(ctx context.Context, userID, tokenID int64) (bool, error)
	DeleteAllForUser(ctx context.Context, userID int64) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const tokenColumns = `id, user_id, token_hash, user_agent, ip_address, created_at, last_used_at`

func (r *repository) Create(ctx context.Context, token *Token) error {
	query := `
		INSERT INTO personal_access_tokens (user_id, token_hash, user_agent, ip_address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		token.UserID,
		token.TokenHash,
		token.UserAgent,
		token.IPAddress,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating access token: %w", err)
	}
	return nil
}

func (r *repository) FindByHash(ctx context.Context, tokenHash string) (*Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM personal_access_tokens WHERE token_hash = $1`

	var token Token
	err := r.db.GetContext(ctx, &token, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding access token: %w", err)
	}
	return &token, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int64) ([]Token, error) {
	query := `SELECT ` + tokenColumns + `
		FROM personal_access_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC`

	tokens := []Token{}
	if err := r.db.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, fmt.Errorf("listing access tokens: %w", err)
	}
	return tokens, nil
}

func (r *repository) TouchLastUsed(ctx context.Context, tokenID int64) error {
	query := `UPDATE personal_access_tokens SET last_used_at = NOW() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, tokenID); err != nil {
		return fmt.Errorf("touching access token: %w", err)
	}
	return nil
}

func (r *repository) DeleteByHash(ctx context.Context, userID int64, tokenHash string) (bool, error) {
	query := `DELETE FROM personal_access_tokens WHERE user_id = $1 AND token_hash = $2`

	result, err := r.db.ExecContext(ctx, query, userID, tokenHash)
	if err != nil {
		return false, fmt.Errorf("deleting access token: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting access token: %w", err)
	}
	return rows > 0, nil
}

func (r *repository) DeleteByID(ctx context.Context, userID, tokenID int64) (bool, error) {
	query := `DELETE FROM personal_access_tokens WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, tokenID)
	if err != nil {
		return false, fmt.Errorf("deleting access token: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting access token: %w", err)
	}
	return rows > 0, nil
}

func (r *repository) DeleteAllForUser(ctx context.Context, userID int64) (bool, error) {
	query := `DELETE FROM personal_access_tokens WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("deleting access tokens: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting access tokens: %w", err)
	}
	return rows > 0, nil
}
