package repository

import (
	"errors"
	"strings"
)

// errCritical terminates repeater retries, matched by criticalError
var errCritical = errors.New("critical database error")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

// Is makes errors.Is(err, errCritical) true for any critical error
func (e *criticalError) Is(target error) bool { return target == errCritical } //nolint:errorlint // identity check

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// isCorruptError checks if an error means the database file itself is unusable
func isCorruptError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "file is not a database") ||
		strings.Contains(errStr, "database disk image is malformed") ||
		strings.Contains(errStr, "SQLITE_NOTADB") ||
		strings.Contains(errStr, "SQLITE_CORRUPT")
}
