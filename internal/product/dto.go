// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/herooiboo/tenjaz/internal/pricing"
)

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=1,max=255"`
	Description *string         `json:"description" validate:"omitempty,max=10000"`
	Price       decimal.Decimal `json:"price"       validate:"-"`
	IsActive    *bool           `json:"is_active"   validate:"omitempty"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"        validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=10000"`
	Price       *decimal.Decimal `json:"price,omitempty"       validate:"-"`
	IsActive    *bool            `json:"is_active,omitempty"   validate:"omitempty"`
}

// ProductResponse carries the viewer-facing price: the base price with
// the viewer's tier discount applied, fixed to two decimals.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       string    `json:"price"`
	Image       *string   `json:"image"`
	Slug        string    `json:"slug"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListParams struct {
	Page     int
	PageSize int
}

func (p *ListParams) Normalize(defaultPageSize int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToProductResponse(p *Product, calc *pricing.Calculator, tier string) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       calc.DisplayPrice(p.Price, tier).StringFixed(2),
		Image:       p.Image,
		Slug:        p.Slug,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProductResponseList(products []Product, calc *pricing.Calculator, tier string) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i], calc, tier))
	}
	return responses
}
