package auth

import "context"

type ctxKey struct{}

// ContextWithClaims attaches the authenticated caller to ctx.
func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFromContext returns the caller attached by ContextWithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok && c != nil
}

// UserIDFromContext returns the caller's user id, or "" if unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	if c, ok := ClaimsFromContext(ctx); ok {
		return c.UserID
	}
	return ""
}
