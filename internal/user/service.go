// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"

	"github.com/herooiboo/tenjaz/internal/auth"
	"github.com/herooiboo/tenjaz/internal/core"
	"github.com/herooiboo/tenjaz/internal/upload"
)

const (
	avatarFolder = "users"
	filePrefix   = "TENJAZ_"
)

type Service struct {
	repo     Repository
	uploader *upload.Uploader
	pageSize int
}

func NewService(repo Repository, uploader *upload.Uploader, pageSize int) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		pageSize: pageSize,
	}
}

// Create registers a new account. The password is argon2id-hashed, the
// tier defaults to base, and an optional avatar is stored verbatim
// (avatars are not transcoded).
func (s *Service) Create(ctx context.Context, req CreateUserRequest, avatar *upload.File) (*User, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	tier := TierBase
	if req.Tier != "" {
		tier, err = ParseTier(req.Tier)
		if err != nil {
			return nil, err
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	u := &User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Tier:         tier,
		IsActive:     isActive,
	}

	if avatar != nil {
		path, err := s.uploader.Store(avatar, avatarFolder, filePrefix, false)
		if err != nil {
			return nil, err
		}
		u.Avatar = &path
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies the present fields of req on top of the stored row.
// A new password is rehashed; a new avatar replaces the stored path
// without deleting the previous file.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest, avatar *upload.File) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Tier != nil {
		tier, err := ParseTier(*req.Tier)
		if err != nil {
			return nil, err
		}
		u.Tier = tier
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Password != nil {
		passwordHash, err := core.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		u.PasswordHash = passwordHash
	}

	if avatar != nil {
		path, err := s.uploader.Store(avatar, avatarFolder, filePrefix, false)
		if err != nil {
			return nil, err
		}
		u.Avatar = &path
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, params ListParams) ([]User, int, error) {
	params.Normalize(s.pageSize)
	return s.repo.List(ctx, params)
}

func (s *Service) GetAll(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

// auth.AccountProvider implementation. The auth package works against
// this narrow view instead of importing user directly.

var _ auth.AccountProvider = (*Service)(nil)

func (s *Service) FindAccountByField(ctx context.Context, field, value string) (*auth.Account, error) {
	u, err := s.repo.FindByField(ctx, field, value)
	if err != nil {
		return nil, err
	}
	return toAccount(u), nil
}

func (s *Service) GetAccountByID(ctx context.Context, id int64) (*auth.Account, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccount(u), nil
}

func (s *Service) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.PasswordHash = passwordHash
	return s.repo.Update(ctx, u)
}

func toAccount(u *User) *auth.Account {
	return &auth.Account{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		Avatar:       u.Avatar,
		Tier:         u.Tier.String(),
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}
