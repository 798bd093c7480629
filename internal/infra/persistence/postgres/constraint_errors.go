package postgres

import (
	"strings"

	domainerrors "clubhouse/internal/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// unique_violation in the PostgreSQL error code table.
const pgUniqueViolation = "23505"

func isUniqueConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// duplicateErrorFor attributes a unique violation to the offending column.
// The constraint names come from the users migration.
func duplicateErrorFor(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.Contains(pgErr.ConstraintName, "email") {
		return domainerrors.ErrDuplicateEmail
	}

	return domainerrors.ErrDuplicateUsername
}
