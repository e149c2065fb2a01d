// AngelaMos | 2026
// entity.go

package user

import (
	"fmt"
	"time"

	"github.com/herooiboo/tenjaz/internal/core"
)

// Tier is the closed set of account classifications driving pricing.
// Unknown strings are rejected at the boundary, never persisted.
type Tier string

const (
	TierBase   Tier = "base"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierBase, TierSilver, TierGold:
		return Tier(s), nil
	default:
		return "", fmt.Errorf("unknown tier %q: %w", s, core.ErrInvalidInput)
	}
}

func (t Tier) String() string {
	return string(t)
}

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Avatar       *string   `db:"avatar"`
	Tier         Tier      `db:"tier"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
