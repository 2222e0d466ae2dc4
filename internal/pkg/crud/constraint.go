package crud

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(columnName)
	return v
}

// columnName reports the gorm column of a row field so violations name the
// stored column rather than the Go field.
func columnName(field reflect.StructField) string {
	for _, part := range strings.Split(field.Tag.Get("gorm"), ";") {
		if name, ok := strings.CutPrefix(strings.TrimSpace(part), "column:"); ok {
			return name
		}
	}
	return field.Name
}

// CheckConstraints validates a row against its `validate` tags. Engines call
// it before every insert and update; a failure leaves the store untouched.
func CheckConstraints(row any) error {
	err := validate.Struct(row)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to check constraints: %w", err)
	}

	fe := fieldErrs[0]
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}

	return &ConstraintError{
		Table:  tableName(row),
		Column: fe.Field(),
		Rule:   rule,
		Err:    fieldErrs,
	}
}

func tableName(row any) string {
	if t, ok := row.(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return ""
}
