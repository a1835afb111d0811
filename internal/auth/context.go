package auth

import (
	"context"

	svcErr "github.com/oggyb/match-service/internal/errors"
)

type callerKey struct{}

// WithCaller stores the authenticated user id in ctx.
func WithCaller(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, callerKey{}, userID)
}

// CallerFrom returns the authenticated user id, if any.
func CallerFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(callerKey{}).(string)
	return id, ok && id != ""
}

// RequireCaller is CallerFrom that fails with Unauthenticated.
func RequireCaller(ctx context.Context) (string, error) {
	id, ok := CallerFrom(ctx)
	if !ok {
		return "", svcErr.Unauthenticated("authentication required")
	}
	return id, nil
}
