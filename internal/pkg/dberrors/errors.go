package dberrors

import (
	"errors"
	"fmt"

	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories care about.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	notNullViolation    = "23502"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation reports whether err is any unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Classify maps constraint failures raised by the database onto application errors.
// Errors that are not constraint failures are returned unchanged.
func Classify(err error, table string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation:
		return apperrors.NewCustomError(apperrors.ErrConflict,
			fmt.Sprintf("%s already contains a row with the same %s", table, constraintSubject(pgErr)))
	case foreignKeyViolation:
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("%s references a row that does not exist", table))
	case checkViolation, notNullViolation:
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("%s rejected the row: %s", table, pgErr.Message))
	default:
		return err
	}
}

func constraintSubject(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "key"
}
