package middleware

import "context"

type contextKey string

const ctxAdminUID contextKey = "admin_uid"

// AdminUIDFromContext returns the verified admin user id, if any.
func AdminUIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAdminUID).(string); ok {
		return v
	}
	return ""
}

// WithAdminUID injects the verified admin user id into the context.
func WithAdminUID(ctx context.Context, uid string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdminUID, uid)
}
