// AngelaMos | 2026
// service_test.go

package product

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/herooiboo/tenjaz/internal/core"
	"github.com/herooiboo/tenjaz/internal/upload"
)

type mockRepository struct {
	CreateFunc      func(ctx context.Context, product *Product) error
	GetByIDFunc     func(ctx context.Context, id int64) (*Product, error)
	FindByFieldFunc func(ctx context.Context, field, value string) (*Product, error)
	UpdateFunc      func(ctx context.Context, product *Product) error
	DeleteFunc      func(ctx context.Context, id int64) error
	ListFunc        func(ctx context.Context, params ListParams) ([]Product, int, error)
	GetAllFunc      func(ctx context.Context) ([]Product, error)
}

func (m *mockRepository) Create(ctx context.Context, product *Product) error {
	return m.CreateFunc(ctx, product)
}
func (m *mockRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockRepository) FindByField(ctx context.Context, field, value string) (*Product, error) {
	return m.FindByFieldFunc(ctx, field, value)
}
func (m *mockRepository) Update(ctx context.Context, product *Product) error {
	return m.UpdateFunc(ctx, product)
}
func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockRepository) List(ctx context.Context, params ListParams) ([]Product, int, error) {
	return m.ListFunc(ctx, params)
}
func (m *mockRepository) GetAll(ctx context.Context) ([]Product, error) {
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

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func TestCreate_DerivesSlug(t *testing.T) {
	var created *Product
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, product *Product) error {
			created = product
			product.ID = 1
			return nil
		},
	}

	svc := NewService(repo, testUploader(t), 10)

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Name:  "Velvet Armchair, Deluxe Edition",
		Price: decimal.RequireFromString("249.99"),
	}, nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created == nil {
		t.Fatal("expected a row to be created")
	}
	if p.Slug != "velvet-armchair-deluxe-edition" {
		t.Errorf("slug = %q", p.Slug)
	}
	if !p.IsActive {
		t.Error("expected new product to be active by default")
	}
}

func TestCreate_NegativePrice(t *testing.T) {
	svc := NewService(&mockRepository{}, testUploader(t), 10)

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Name:  "Freebie",
		Price: decimal.RequireFromString("-1"),
	}, nil)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("error = %v; want ErrInvalidInput", err)
	}
}

func TestCreate_StoresImageVerbatim(t *testing.T) {
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, product *Product) error { return nil },
	}
	svc := NewService(repo, testUploader(t), 10)

	img := &upload.File{Name: "chair.png", Data: pngBytes(t)}
	p, err := svc.Create(context.Background(), CreateProductRequest{
		Name:  "Chair",
		Price: decimal.NewFromInt(10),
	}, img)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if p.Image == nil {
		t.Fatal("expected an image path")
	}
	if !strings.HasPrefix(*p.Image, "products/TENJAZ_") {
		t.Errorf("image path = %q", *p.Image)
	}
	if !strings.HasSuffix(*p.Image, ".png") {
		t.Errorf("image path = %q; want the declared extension kept", *p.Image)
	}
}

func TestUpdate_RenameRegeneratesSlug(t *testing.T) {
	stored := &Product{
		ID:        3,
		Name:      "Old Lamp",
		Slug:      "old-lamp",
		Price:     decimal.NewFromInt(30),
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*Product, error) {
			copied := *stored
			return &copied, nil
		},
		UpdateFunc: func(ctx context.Context, product *Product) error { return nil },
	}

	svc := NewService(repo, testUploader(t), 10)

	name := "Désk Lamp élégante"
	p, err := svc.Update(context.Background(), 3, UpdateProductRequest{
		Name: &name,
	}, nil)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if p.Slug != "desk-lamp-elegante" {
		t.Errorf("slug = %q", p.Slug)
	}
}

func TestUpdate_PriceOnlyKeepsSlug(t *testing.T) {
	stored := &Product{ID: 3, Name: "Old Lamp", Slug: "old-lamp", Price: decimal.NewFromInt(30)}

	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*Product, error) {
			copied := *stored
			return &copied, nil
		},
		UpdateFunc: func(ctx context.Context, product *Product) error { return nil },
	}

	svc := NewService(repo, testUploader(t), 10)

	price := decimal.RequireFromString("35.50")
	p, err := svc.Update(context.Background(), 3, UpdateProductRequest{
		Price: &price,
	}, nil)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if p.Slug != "old-lamp" {
		t.Errorf("slug = %q; want unchanged", p.Slug)
	}
	if !p.Price.Equal(price) {
		t.Errorf("price = %s; want %s", p.Price, price)
	}
}

func TestGetBySlug(t *testing.T) {
	repo := &mockRepository{
		FindByFieldFunc: func(ctx context.Context, field, value string) (*Product, error) {
			if field != "slug" {
				t.Errorf("field = %q; want slug", field)
			}
			if value != "old-lamp" {
				t.Errorf("value = %q; want old-lamp", value)
			}
			return &Product{ID: 3, Slug: "old-lamp"}, nil
		},
	}

	svc := NewService(repo, testUploader(t), 10)

	p, err := svc.GetBySlug(context.Background(), "old-lamp")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if p.ID != 3 {
		t.Errorf("id = %d; want 3", p.ID)
	}
}

func TestList_NormalizesParams(t *testing.T) {
	var got ListParams
	repo := &mockRepository{
		ListFunc: func(ctx context.Context, params ListParams) ([]Product, int, error) {
			got = params
			return []Product{}, 0, nil
		},
	}

	svc := NewService(repo, testUploader(t), 10)

	if _, _, err := svc.List(context.Background(), ListParams{}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got.Page != 1 || got.PageSize != 10 {
		t.Errorf("params = %+v; want page 1 size 10", got)
	}
}
