package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	svcErr "github.com/oggyb/match-service/internal/errors"
)

// storageErr translates gorm/driver failures into the domain taxonomy.
// Context errors are kept as-is so the mapper can report deadlines precisely.
func storageErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return svcErr.Wrap(svcErr.KindNotFound, "record not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return svcErr.Wrap(svcErr.KindConflict, op+": duplicate record", err)
	default:
		return svcErr.Unavailable(op, err)
	}
}

// lookupErr is storageErr with a caller supplied not-found message.
func lookupErr(op, notFound string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return svcErr.NotFound(notFound)
	}
	return storageErr(op, err)
}
