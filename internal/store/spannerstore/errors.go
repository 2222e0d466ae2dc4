package spannerstore

import (
	"errors"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// translateError maps Spanner status codes onto the crud error set.
// Errors that already carry a crud sentinel pass through unchanged.
func translateError(table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, crud.ErrNotFound) || errors.Is(err, crud.ErrConstraintViolation) {
		return err
	}

	switch spanner.ErrCode(err) {
	case codes.NotFound:
		return errors.Join(crud.ErrNotFound, err)
	case codes.FailedPrecondition, codes.InvalidArgument, codes.OutOfRange:
		return &crud.ConstraintError{Table: table, Rule: spanner.ErrDesc(err), Err: err}
	}
	return err
}
