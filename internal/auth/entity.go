// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// Token is one issued bearer credential. Only the sha256 hash of the
// plaintext is stored; a token is either present (active) or deleted
// (revoked), nothing in between.
type Token struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	TokenHash  string     `db:"token_hash"`
	UserAgent  string     `db:"user_agent"`
	IPAddress  string     `db:"ip_address"`
	CreatedAt  time.Time  `db:"created_at"`
	LastUsedAt *time.Time `db:"last_used_at"`
}
