package middleware

import "context"

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxAdmin  contextKey = "is_admin"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func IsAdminFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	if v, ok := ctx.Value(ctxAdmin).(bool); ok {
		return v
	}
	return false
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithAdmin marks the context as carrying admin privileges.
func WithAdmin(ctx context.Context, isAdmin bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdmin, isAdmin)
}
