package auth

import (
	"context"
	"errors"
)

// contextKey is a private type so auth context values cannot collide
type contextKey string

const userContextKey contextKey = "auth_user"

// WithUser adds the authenticated user's claims to the context
func WithUser(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

// GetUserFromContext extracts the authenticated user's claims from the context
func GetUserFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(userContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return claims, nil
}
