// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/herooiboo/tenjaz/internal/core"
	"github.com/herooiboo/tenjaz/internal/upload"
)

const (
	imageFolder = "products"
	filePrefix  = "TENJAZ_"
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

// Create stores a new product. The slug is derived from the name, and
// an optional image is stored verbatim under its declared extension.
func (s *Service) Create(ctx context.Context, req CreateProductRequest, image *upload.File) (*Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("create product: negative price: %w", core.ErrInvalidInput)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p := &Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Slug:        slug.Make(req.Name),
		IsActive:    isActive,
	}

	if image != nil {
		path, err := s.uploader.Store(image, imageFolder, filePrefix, false)
		if err != nil {
			return nil, err
		}
		p.Image = &path
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug resolves a product by its URL slug.
func (s *Service) GetBySlug(ctx context.Context, value string) (*Product, error) {
	return s.repo.FindByField(ctx, "slug", value)
}

// Update applies the present fields of req. Renaming a product
// regenerates its slug; a new image replaces the stored path without
// deleting the previous file.
func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest, image *upload.File) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
		p.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("update product: negative price: %w", core.ErrInvalidInput)
		}
		p.Price = *req.Price
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if image != nil {
		path, err := s.uploader.Store(image, imageFolder, filePrefix, false)
		if err != nil {
			return nil, err
		}
		p.Image = &path
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Product, int, error) {
	params.Normalize(s.pageSize)
	return s.repo.List(ctx, params)
}

func (s *Service) GetAll(ctx context.Context) ([]Product, error) {
	return s.repo.GetAll(ctx)
}
