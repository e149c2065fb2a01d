// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// AccountSummary is the account shape returned alongside a freshly
// issued token. The auth package keeps its own view of the account so
// it does not depend on the user package's response types.
type AccountSummary struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	Tier      string    `json:"tier"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	User      AccountSummary `json:"user"`
	Token     string         `json:"token"`
	TokenType string         `json:"token_type"`
}

type LogoutResponse struct {
	Revoked bool `json:"revoked"`
}

type SessionInfo struct {
	ID         int64      `json:"id"`
	UserAgent  string     `json:"user_agent"`
	IPAddress  string     `json:"ip_address"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	Current    bool       `json:"current"`
}

func toSessionInfo(t *Token, currentTokenID int64) SessionInfo {
	return SessionInfo{
		ID:         t.ID,
		UserAgent:  t.UserAgent,
		IPAddress:  t.IPAddress,
		CreatedAt:  t.CreatedAt,
		LastUsedAt: t.LastUsedAt,
		Current:    t.ID == currentTokenID,
	}
}
