// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog row. Price is the stored base price; what a
// viewer sees is derived per request from their tier and is never
// written back. Slug is derived from Name on every name write.
type Product struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Image       *string         `db:"image"`
	Slug        string          `db:"slug"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
