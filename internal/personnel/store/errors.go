package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"astrotrack/pkg/platform/sentinel"
)

const personNameConstraint = "people_name_key"

// classify maps driver errors onto store sentinels. Anything unrecognised is
// returned unchanged for the service to report as unavailable.
func (s *SQL) classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == personNameConstraint {
				return fmt.Errorf("%w: %s", sentinel.ErrAlreadyUsed, pqErr.Message)
			}
			return fmt.Errorf("%w: %s", sentinel.ErrConflict, pqErr.Message)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", sentinel.ErrNotFound, pqErr.Message)
		case "40001", "40P01", "55P03": // serialization_failure, deadlock_detected, lock_not_available
			return fmt.Errorf("%w: %s", sentinel.ErrConflict, pqErr.Message)
		}
		return err
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			if strings.Contains(sqliteErr.Error(), "people.name") {
				return fmt.Errorf("%w: %s", sentinel.ErrAlreadyUsed, sqliteErr.Error())
			}
			return fmt.Errorf("%w: %s", sentinel.ErrConflict, sqliteErr.Error())
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %s", sentinel.ErrNotFound, sqliteErr.Error())
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %s", sentinel.ErrConflict, sqliteErr.Error())
		}
	}
	return err
}
