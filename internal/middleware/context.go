// AngelaMos | 2026
// context.go

package middleware

import (
	"context"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
	UserTierKey  contextKey = "user_tier"
	TokenIDKey   contextKey = "token_id"
)

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserID returns the authenticated account id, or 0 when anonymous.
func GetUserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(UserIDKey).(int64); ok {
		return id
	}
	return 0
}

func GetUserTier(ctx context.Context) string {
	if tier, ok := ctx.Value(UserTierKey).(string); ok {
		return tier
	}
	return ""
}

// GetTokenID returns the id of the token record backing the current
// request, or 0 when anonymous.
func GetTokenID(ctx context.Context) int64 {
	if id, ok := ctx.Value(TokenIDKey).(int64); ok {
		return id
	}
	return 0
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != 0
}
