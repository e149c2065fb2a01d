// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/herooiboo/tenjaz/internal/core"
	"github.com/herooiboo/tenjaz/internal/upload"
)

type mockRepository struct {
	CreateFunc      func(ctx context.Context, user *User) error
	GetByIDFunc     func(ctx context.Context, id int64) (*User, error)
	FindByFieldFunc func(ctx context.Context, field, value string) (*User, error)
	UpdateFunc      func(ctx context.Context, user *User) error
	DeleteFunc      func(ctx context.Context, id int64) error
	ListFunc        func(ctx context.Context, params ListParams) ([]User, int, error)
	GetAllFunc      func(ctx context.Context) ([]User, error)
}

func (m *mockRepository) Create(ctx context.Context, user *User) error {
	return m.CreateFunc(ctx, user)
}
func (m *mockRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockRepository) FindByField(ctx context.Context, field, value string) (*User, error) {
	return m.FindByFieldFunc(ctx, field, value)
}
func (m *mockRepository) Update(ctx context.Context, user *User) error {
	return m.UpdateFunc(ctx, user)
}
func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockRepository) List(ctx context.Context, params ListParams) ([]User, int, error) {
	return m.ListFunc(ctx, params)
}
func (m *mockRepository) GetAll(ctx context.Context) ([]User, error) {
	return m.GetAllFunc(ctx)
}

func testUploader(t *testing.T) *upload.Uploader {
	t.Helper()
	return upload.New(upload.Config{
		Root:                   t.TempDir(),
		AllowedExtensions:      []string{"jpeg", "jpg", "png", "gif"},
		TranscodableExtensions: []string{"jpeg", "jpg", "png"},
	})
}

func TestCreate_Defaults(t *testing.T) {
	var created *User
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, user *User) error {
			created = user
			user.ID = 1
			return nil
		},
	}

	svc := NewService(repo, testUploader(t), 10)

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Meriem",
		Username: "meriem",
		Password: "hunter2hunter2",
	}, nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created == nil {
		t.Fatal("expected a row to be created")
	}
	if u.Tier != TierBase {
		t.Errorf("tier = %q; want %q", u.Tier, TierBase)
	}
	if !u.IsActive {
		t.Error("expected new account to be active by default")
	}
	if u.Avatar != nil {
		t.Errorf("avatar = %v; want nil", *u.Avatar)
	}

	if u.PasswordHash == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}
	valid, err := core.VerifyPassword("hunter2hunter2", u.PasswordHash)
	if err != nil || !valid {
		t.Errorf("stored hash does not verify: valid=%v err=%v", valid, err)
	}
}

func TestCreate_ExplicitTierAndInactive(t *testing.T) {
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, user *User) error { return nil },
	}
	svc := NewService(repo, testUploader(t), 10)

	inactive := false
	u, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Nadia",
		Username: "nadia",
		Password: "hunter2hunter2",
		Tier:     "gold",
		IsActive: &inactive,
	}, nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if u.Tier != TierGold {
		t.Errorf("tier = %q; want %q", u.Tier, TierGold)
	}
	if u.IsActive {
		t.Error("expected account to be created inactive")
	}
}

func TestCreate_StoresAvatar(t *testing.T) {
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, user *User) error { return nil },
	}
	svc := NewService(repo, testUploader(t), 10)

	avatar := &upload.File{Name: "me.png", Data: []byte("png bytes")}
	u, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Meriem",
		Username: "meriem",
		Password: "hunter2hunter2",
	}, avatar)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if u.Avatar == nil {
		t.Fatal("expected an avatar path")
	}
	if !strings.HasPrefix(*u.Avatar, "users/TENJAZ_") {
		t.Errorf("avatar path = %q", *u.Avatar)
	}
	// Avatars are stored verbatim, never transcoded.
	if !strings.HasSuffix(*u.Avatar, ".png") {
		t.Errorf("avatar path = %q; want .png suffix", *u.Avatar)
	}
}

func TestCreate_RejectsDisallowedAvatar(t *testing.T) {
	svc := NewService(&mockRepository{}, testUploader(t), 10)

	avatar := &upload.File{Name: "me.bmp", Data: []byte("BM")}
	_, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Meriem",
		Username: "meriem",
		Password: "hunter2hunter2",
	}, avatar)
	if !errors.Is(err, core.ErrUnsupportedType) {
		t.Fatalf("error = %v; want ErrUnsupportedType", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	stored := &User{
		ID:           5,
		Username:     "meriem",
		PasswordHash: "old-hash",
		Name:         "Meriem",
		Tier:         TierBase,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	var updated *User
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*User, error) {
			copied := *stored
			return &copied, nil
		},
		UpdateFunc: func(ctx context.Context, user *User) error {
			updated = user
			return nil
		},
	}

	svc := NewService(repo, testUploader(t), 10)

	tier := "silver"
	u, err := svc.Update(context.Background(), 5, UpdateUserRequest{
		Tier: &tier,
	}, nil)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated == nil {
		t.Fatal("expected an update to be persisted")
	}
	if u.Tier != TierSilver {
		t.Errorf("tier = %q; want %q", u.Tier, TierSilver)
	}
	if u.Username != "meriem" || u.Name != "Meriem" {
		t.Errorf("untouched fields changed: %+v", u)
	}
	if u.PasswordHash != "old-hash" {
		t.Error("password hash changed without a new password")
	}
}

func TestUpdate_RehashesNewPassword(t *testing.T) {
	stored := &User{ID: 5, Username: "meriem", PasswordHash: "old-hash", Tier: TierBase}

	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*User, error) {
			copied := *stored
			return &copied, nil
		},
		UpdateFunc: func(ctx context.Context, user *User) error { return nil },
	}

	svc := NewService(repo, testUploader(t), 10)

	password := "a brand new password"
	u, err := svc.Update(context.Background(), 5, UpdateUserRequest{
		Password: &password,
	}, nil)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if u.PasswordHash == "old-hash" || u.PasswordHash == password {
		t.Fatalf("password hash = %q", u.PasswordHash)
	}
	valid, err := core.VerifyPassword(password, u.PasswordHash)
	if err != nil || !valid {
		t.Errorf("new hash does not verify: valid=%v err=%v", valid, err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*User, error) {
			return nil, core.ErrNotFound
		},
	}

	svc := NewService(repo, testUploader(t), 10)

	_, err := svc.Update(context.Background(), 404, UpdateUserRequest{}, nil)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestList_NormalizesParams(t *testing.T) {
	var got ListParams
	repo := &mockRepository{
		ListFunc: func(ctx context.Context, params ListParams) ([]User, int, error) {
			got = params
			return []User{}, 0, nil
		},
	}

	svc := NewService(repo, testUploader(t), 10)

	if _, _, err := svc.List(context.Background(), ListParams{}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got.Page != 1 || got.PageSize != 10 {
		t.Errorf("params = %+v; want page 1 size 10", got)
	}

	if _, _, err := svc.List(context.Background(), ListParams{Page: -3, PageSize: 9999}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got.Page != 1 || got.PageSize != 100 {
		t.Errorf("params = %+v; want page 1 size capped at 100", got)
	}
}
