// Package pgerr maps Postgres driver errors onto the store error taxonomy
// shared by every repository.
package pgerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// ErrStoreUnavailable wraps connection, timeout, and other non-business
// failures talking to Postgres.
var ErrStoreUnavailable = errors.New("store unavailable")

const uniqueViolation = "23505"

// SQLState returns the SQLSTATE code carried by err, or "" if err did not
// come from the server. Both pgdriver (runtime) and pgx (tests) are handled.
func SQLState(err error) string {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C')
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return SQLState(err) == uniqueViolation
}

// Classify converts a raw query error. sql.ErrNoRows becomes notFound, a
// unique violation becomes conflict, anything else is ErrStoreUnavailable.
// A nil sentinel leaves that case to fall through to ErrStoreUnavailable.
func Classify(op string, err error, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, sql.ErrNoRows):
		return notFound
	case conflict != nil && IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, conflict)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
}
