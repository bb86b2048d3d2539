package httpx

import (
	"context"

	"github.com/dmitrijs2005/taskmanager/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

func contextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the authenticated identity attached by the
// access middleware, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
