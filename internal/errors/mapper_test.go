package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	svcErr "github.com/oggyb/match-service/internal/errors"
)

func TestMap(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"invalid argument", svcErr.InvalidArgument("bad id"), codes.InvalidArgument},
		{"not found", svcErr.NotFound("user not found"), codes.NotFound},
		{"conflict", svcErr.Conflict("duplicate"), codes.AlreadyExists},
		{"unavailable", svcErr.Unavailable("insert like", fmt.Errorf("dial tcp: refused")), codes.Unavailable},
		{"unauthenticated", svcErr.Unauthenticated("missing token"), codes.Unauthenticated},
		{"wrapped kind", fmt.Errorf("outer: %w", svcErr.NotFound("match not found")), codes.NotFound},
		{"gorm not found", gorm.ErrRecordNotFound, codes.NotFound},
		{"deadline", svcErr.Unavailable("lock", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"status passthrough", status.Error(codes.PermissionDenied, "nope"), codes.PermissionDenied},
		{"plain error", fmt.Errorf("boom"), codes.Internal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, status.Code(svcErr.Map(tc.err)))
		})
	}

	assert.NoError(t, svcErr.Map(nil))
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("ctx: %w", svcErr.Conflict("dup"))

	assert.Equal(t, svcErr.KindConflict, svcErr.KindOf(err))
	assert.True(t, svcErr.IsKind(err, svcErr.KindConflict))
	assert.False(t, svcErr.IsKind(err, svcErr.KindNotFound))
	assert.False(t, svcErr.IsKind(nil, svcErr.KindConflict))
	assert.Equal(t, svcErr.KindInternal, svcErr.KindOf(fmt.Errorf("plain")))
}

func TestUnavailableUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := svcErr.Unavailable("find likes", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "find likes failed: connection reset", err.Error())
}
