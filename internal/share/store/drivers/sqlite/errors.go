package sqlite

import (
	"errors"
	"strings"

	"github.com/aussiebroadwan/deptshare/internal/share/store"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// mapConstraint turns a UNIQUE violation into the matching store error.
// SQLite reports the offending column as "UNIQUE constraint failed: table.column".
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}

	var serr *msqlite.Error
	if !errors.As(err, &serr) {
		return err
	}

	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
	default:
		return err
	}

	msg := serr.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}

	switch {
	case strings.Contains(msg, "accounts.email"):
		return store.ErrDuplicateEmail
	case strings.Contains(msg, "accounts.identifier"):
		return store.ErrDuplicateIdentifier
	default:
		return store.ErrAlreadyExists
	}
}
