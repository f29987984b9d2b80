package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Constraint failures surfaced by the repositories
var (
	ErrDuplicate        = errors.New("record already exists")
	ErrMissingReference = errors.New("referenced record missing")
	ErrOutOfRange       = errors.New("value out of range")
)

const (
	codeNumericOutOfRange   = "22003"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// Classify wraps a postgres constraint violation in the matching sentinel so
// callers can branch with errors.Is. Anything else is returned unchanged.
func Classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w (%s): %w", ErrDuplicate, pgErr.ConstraintName, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w (%s): %w", ErrMissingReference, pgErr.ConstraintName, err)
	case codeCheckViolation, codeNumericOutOfRange:
		return fmt.Errorf("%w (%s): %w", ErrOutOfRange, pgErr.ConstraintName, err)
	}
	return err
}

// IsNotFound reports a gorm lookup that matched no row
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
