package utils

import (
	"context"
)

type contextKey string

const AccountIDKey contextKey = "account_id"

// SetAccountContext attaches the authenticated account to ctx.
func SetAccountContext(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, AccountIDKey, accountID)
}

func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AccountIDKey).(int64)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}
