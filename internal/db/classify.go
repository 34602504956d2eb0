package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "sitereport/internal/errors"
)

// MySQL server error numbers.
const (
	mysqlTooManyConnections = 1040
	mysqlServerShutdown     = 1053
	mysqlUnknownColumn      = 1054
	mysqlDuplicateEntry     = 1062
	mysqlNoSuchTable        = 1146
	mysqlLockWaitTimeout    = 1205
	mysqlDeadlock           = 1213
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
)

// Classify wraps err into an *errors.StorageError carrying its kind.
// nil stays nil and already classified errors pass through.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *apperrors.StorageError
	if errors.As(err, &se) {
		return err
	}
	return apperrors.NewStorageError(kindOf(err), op, err)
}

func kindOf(err error) apperrors.StorageKind {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.StorageNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.StorageConstraint
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, mysqldriver.ErrInvalidConn),
		errors.Is(err, context.DeadlineExceeded):
		return apperrors.StorageTransient
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return mysqlKind(myErr.Number)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return postgresKind(pgErr.Code)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return apperrors.StorageTransient
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return sqliteKind(liteErr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperrors.StorageTransient
	}
	return apperrors.StorageUnknown
}

func mysqlKind(number uint16) apperrors.StorageKind {
	switch number {
	case mysqlUnknownColumn, mysqlNoSuchTable:
		return apperrors.StorageSchemaMismatch
	case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlNoReferencedRow:
		return apperrors.StorageConstraint
	case mysqlLockWaitTimeout, mysqlDeadlock, mysqlTooManyConnections, mysqlServerShutdown:
		return apperrors.StorageTransient
	default:
		return apperrors.StorageUnknown
	}
}

func postgresKind(code string) apperrors.StorageKind {
	switch {
	case code == "42703", code == "42P01": // undefined_column, undefined_table
		return apperrors.StorageSchemaMismatch
	case strings.HasPrefix(code, "23"): // integrity_constraint_violation class
		return apperrors.StorageConstraint
	case strings.HasPrefix(code, "08"), // connection_exception class
		code == "40001", // serialization_failure
		code == "40P01", // deadlock_detected
		code == "55P03", // lock_not_available
		code == "57P01", // admin_shutdown
		code == "53300": // too_many_connections
		return apperrors.StorageTransient
	default:
		return apperrors.StorageUnknown
	}
}

// SQLite reports a missing column as the generic SQLITE_ERROR; the message
// is the only discriminator left once the code has narrowed it down.
func sqliteKind(err sqlite3.Error) apperrors.StorageKind {
	switch err.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return apperrors.StorageTransient
	case sqlite3.ErrConstraint:
		return apperrors.StorageConstraint
	case sqlite3.ErrError:
		msg := err.Error()
		if strings.Contains(msg, "no such column") ||
			strings.Contains(msg, "has no column named") ||
			strings.Contains(msg, "no such table") {
			return apperrors.StorageSchemaMismatch
		}
	}
	return apperrors.StorageUnknown
}
