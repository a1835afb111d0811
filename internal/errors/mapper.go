// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

// Map converts domain/infra errors into gRPC status errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}

	// already a status (e.g. produced by an interceptor)
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	case errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "record not found")
	}

	var e *Error
	if !errors.As(err, &e) {
		// fallback → bubble up error message for debugging
		return status.Error(codes.Internal, err.Error())
	}

	switch e.Kind {
	case KindInvalidArgument:
		return status.Error(codes.InvalidArgument, e.Message)
	case KindNotFound:
		return status.Error(codes.NotFound, e.Message)
	case KindConflict:
		return status.Error(codes.AlreadyExists, e.Message)
	case KindStorageUnavailable:
		return status.Error(codes.Unavailable, e.Error())
	case KindUnauthenticated:
		return status.Error(codes.Unauthenticated, e.Message)
	default:
		return status.Error(codes.Internal, e.Error())
	}
}
