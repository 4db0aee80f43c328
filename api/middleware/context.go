package middleware

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	cartSessionKey
)

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// CartSessionFromContext returns the session CartSession resolved, or "" outside that group.
func CartSessionFromContext(ctx context.Context) string {
	return stringValue(ctx, cartSessionKey)
}

func WithCartSession(ctx context.Context, session string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, cartSessionKey, session)
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}
