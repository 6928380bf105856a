package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
	sqliteUniqueFailure = "UNIQUE constraint failed"
)

var knownConstraints = []string{
	ConstraintWorkspaceName,
	ConstraintCategoryName,
	ConstraintTagName,
	ConstraintPriorityName,
	ConstraintStatusName,
	ConstraintProjectTitle,
	ConstraintTaskTitle,
}

// TranslateError turns a violation of one of the named unique constraints
// into a ValidationError carrying the constraint name. Other errors are
// returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if name, ok := violatedConstraint(err); ok {
		return apierrors.NewValidationError(fmt.Sprintf("Constraint %q is violated.", name))
	}
	return err
}

func violatedConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return matchConstraint(pgErr.ConstraintName)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number != mysqlDuplicateEntry {
			return "", false
		}
		return matchConstraint(myErr.Message)
	}

	// SQLite reports expression indexes as: UNIQUE constraint failed: index '<name>'
	msg := err.Error()
	if strings.Contains(msg, sqliteUniqueFailure) {
		return matchConstraint(msg)
	}
	return "", false
}

func matchConstraint(text string) (string, bool) {
	for _, name := range knownConstraints {
		if strings.Contains(text, name) {
			return name, true
		}
	}
	return "", false
}
