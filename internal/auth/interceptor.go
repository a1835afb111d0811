package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	svcErr "github.com/oggyb/match-service/internal/errors"
)

// UnaryInterceptor authenticates every call except the listed public methods.
// The caller id is taken from "authorization: Bearer <token>" metadata.
func UnaryInterceptor(tokens *TokenIssuer, publicMethods ...string) grpc.UnaryServerInterceptor {
	public := make(map[string]struct{}, len(publicMethods))
	for _, m := range publicMethods {
		public[m] = struct{}{}
	}

	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if _, ok := public[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		if strings.HasPrefix(info.FullMethod, "/grpc.health.v1.Health/") ||
			strings.HasPrefix(info.FullMethod, "/grpc.reflection.") {
			return handler(ctx, req)
		}

		token, err := bearerToken(ctx)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		userID, err := tokens.Verify(token)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		return handler(WithCaller(ctx, userID), req)
	}
}

func bearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", svcErr.Unauthenticated("missing metadata")
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", svcErr.Unauthenticated("missing authorization header")
	}
	scheme, token, found := strings.Cut(values[0], " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", svcErr.Unauthenticated("authorization must be a bearer token")
	}
	return strings.TrimSpace(token), nil
}
