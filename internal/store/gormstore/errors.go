package gormstore

import (
	"errors"
	"regexp"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// PostgreSQL SQLSTATE codes reported for column constraints.
const (
	NotNullViolationCode    = "23502"
	StringTooLongCode       = "22001"
	CheckViolationCode      = "23514"
	UniqueViolationCode     = "23505"
	ForeignKeyViolationCode = "23503"
)

// MySQL server error numbers reported for column constraints.
const (
	mysqlBadNullError      = 1048
	mysqlNoDefaultForField = 1364
	mysqlDataTooLong       = 1406
	mysqlCheckConstraint   = 3819
)

var pgRules = map[string]string{
	NotNullViolationCode:    "required",
	StringTooLongCode:       "max",
	CheckViolationCode:      "check",
	UniqueViolationCode:     "unique",
	ForeignKeyViolationCode: "foreign_key",
}

var mysqlRules = map[uint16]string{
	mysqlBadNullError:      "required",
	mysqlNoDefaultForField: "required",
	mysqlDataTooLong:       "max",
	mysqlCheckConstraint:   "check",
}

// mysqlColumnPattern extracts the column from messages such as
// "Column 'prod_name' cannot be null" or "Data too long for column 'prod_name' at row 1".
var mysqlColumnPattern = regexp.MustCompile(`(?i)(?:column|field) '([^']+)'`)

// AsPgError unwraps err into a PostgreSQL error if it carries one.
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsMySQLError unwraps err into a MySQL server error if it carries one.
func AsMySQLError(err error) (*mysql.MySQLError, bool) {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// translateError turns database-reported constraint failures into
// *crud.ConstraintError so callers see one error shape for every engine.
// Errors raised by the model hooks are already in that shape.
func translateError(table string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := crud.AsConstraintError(err); ok {
		return err
	}

	if pe, ok := AsPgError(err); ok {
		if rule, known := pgRules[pe.Code]; known {
			t := pe.TableName
			if t == "" {
				t = table
			}
			return &crud.ConstraintError{Table: t, Column: pe.ColumnName, Rule: rule, Err: err}
		}
		return err
	}

	if me, ok := AsMySQLError(err); ok {
		if rule, known := mysqlRules[me.Number]; known {
			var column string
			if m := mysqlColumnPattern.FindStringSubmatch(me.Message); m != nil {
				column = m[1]
			}
			return &crud.ConstraintError{Table: table, Column: column, Rule: rule, Err: err}
		}
	}

	return err
}
