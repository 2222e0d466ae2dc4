package crud

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an update targets an identity that is not stored.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation is matched by every *ConstraintError.
	ErrConstraintViolation = errors.New("constraint violation")
)

// ConstraintError describes a column constraint rejected at persistence time,
// either by the engine-side hook or by the database itself.
type ConstraintError struct {
	Table  string
	Column string
	Rule   string
	Err    error
}

func (e *ConstraintError) Error() string {
	target := e.Column
	if e.Table != "" {
		target = e.Table + "." + e.Column
	}
	if target == "" {
		return fmt.Sprintf("%s: %s", ErrConstraintViolation, e.Rule)
	}
	return fmt.Sprintf("%s: %s violates %s", ErrConstraintViolation, target, e.Rule)
}

// Is reports ErrConstraintViolation as the error's category.
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// AsConstraintError unwraps err into a *ConstraintError if it carries one.
func AsConstraintError(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
