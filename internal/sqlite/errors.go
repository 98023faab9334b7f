package sqlite

import (
	"errors"
	"strings"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// constraint reports whether err is a violation with the given extended
// result code, falling back to the message when extended codes are off.
func constraint(err error, code int, message string) bool {
	if err == nil {
		return false
	}
	var driverErr *moderncsqlite.Error
	if errors.As(err, &driverErr) && driverErr.Code() == code {
		return true
	}
	return strings.Contains(err.Error(), message)
}

func isForeignKeyViolation(err error) bool {
	return constraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY constraint failed")
}

// isUniqueViolation also covers primary keys, which collide only on
// duplicate IDs.
func isUniqueViolation(err error) bool {
	return constraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE constraint failed") ||
		constraint(err, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, "PRIMARY KEY constraint failed")
}
