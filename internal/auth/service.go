// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/herooiboo/tenjaz/internal/core"
	"github.com/herooiboo/tenjaz/internal/middleware"
)

// Account is the auth package's view of a stored account. The user
// package implements AccountProvider so auth never imports it.
type Account struct {
	ID           int64
	Username     string
	Name         string
	Avatar       *string
	Tier         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

type AccountProvider interface {
	// FindAccountByField looks up an account by a whitelisted column
	// (username or name). Returns core.ErrNotFound when absent.
	FindAccountByField(ctx context.Context, field, value string) (*Account, error)
	GetAccountByID(ctx context.Context, id int64) (*Account, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}

type Service struct {
	repo        Repository
	accounts    AccountProvider
	lookupField string
	logger      *slog.Logger
}

func NewService(repo Repository, accounts AccountProvider, lookupField string, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		accounts:    accounts,
		lookupField: lookupField,
		logger:      logger,
	}
}

// Login verifies credentials against the configured lookup field and
// issues a fresh opaque token. An inactive account is rejected before
// the password is checked; an unknown account still burns a full hash
// verification so the two failures are not timing-distinguishable.
func (s *Service) Login(ctx context.Context, req LoginRequest, userAgent, ipAddress string) (*LoginResponse, error) {
	account, err := s.accounts.FindAccountByField(ctx, s.lookupField, req.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, fmt.Errorf("account %s lookup: %w", s.lookupField, core.ErrNotFound)
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	if !account.IsActive {
		return nil, core.ErrInactive
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(req.Password, &account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	if newHash != "" {
		// Best effort; the login still succeeds on the old hash.
		if err := s.accounts.UpdatePasswordHash(ctx, account.ID, newHash); err != nil {
			s.logger.Warn("password rehash failed", "user_id", account.ID, "error", err)
		}
	}

	plaintext, err := core.GenerateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	token := &Token{
		UserID:    account.ID,
		TokenHash: core.HashToken(plaintext),
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}
	if err := s.repo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:      toAccountSummary(account),
		Token:     plaintext,
		TokenType: "Bearer",
	}, nil
}

// VerifyToken resolves a presented plaintext token for the request
// middleware. Tokens bound to deactivated accounts stop working
// immediately even though they still exist in storage.
func (s *Service) VerifyToken(ctx context.Context, plaintext string) (*middleware.TokenClaims, error) {
	token, err := s.repo.FindByHash(ctx, core.HashToken(plaintext))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrTokenInvalid
		}
		return nil, err
	}

	account, err := s.accounts.GetAccountByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrTokenInvalid
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, core.ErrTokenInvalid
	}

	if err := s.repo.TouchLastUsed(ctx, token.ID); err != nil {
		s.logger.Warn("touching token failed", "token_id", token.ID, "error", err)
	}

	return &middleware.TokenClaims{
		UserID:  account.ID,
		Tier:    account.Tier,
		TokenID: token.ID,
	}, nil
}

// Logout revokes the token presented on the current request. Revoking
// an already-gone token is not an error; the returned bool reports
// whether anything was actually deleted.
func (s *Service) Logout(ctx context.Context, userID int64, plaintext string) (bool, error) {
	return s.repo.DeleteByHash(ctx, userID, core.HashToken(plaintext))
}

// LogoutAll revokes every token the account holds.
func (s *Service) LogoutAll(ctx context.Context, userID int64) (bool, error) {
	return s.repo.DeleteAllForUser(ctx, userID)
}

// Sessions lists the account's active tokens, flagging the one backing
// the current request.
func (s *Service) Sessions(ctx context.Context, userID, currentTokenID int64) ([]SessionInfo, error) {
	tokens, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions := make([]SessionInfo, 0, len(tokens))
	for i := range tokens {
		sessions = append(sessions, toSessionInfo(&tokens[i], currentTokenID))
	}
	return sessions, nil
}

// RevokeSession deletes a single token by id, scoped to the owner.
func (s *Service) RevokeSession(ctx context.Context, userID, tokenID int64) error {
	deleted, err := s.repo.DeleteByID(ctx, userID, tokenID)
	if err != nil {
		return err
	}
	if !deleted {
		return core.ErrNotFound
	}
	return nil
}

func toAccountSummary(a *Account) AccountSummary {
	return AccountSummary{
		ID:        a.ID,
		Username:  a.Username,
		Name:      a.Name,
		Avatar:    a.Avatar,
		Tier:      a.Tier,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}
