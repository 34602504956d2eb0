package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "sitereport/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"mysql unknown column", &mysqldriver.MySQLError{Number: 1054, Message: "Unknown column 'is_master'"}, apperrors.ErrSchemaMismatch},
		{"mysql missing table", &mysqldriver.MySQLError{Number: 1146}, apperrors.ErrSchemaMismatch},
		{"mysql duplicate", &mysqldriver.MySQLError{Number: 1062}, apperrors.ErrConstraintViolation},
		{"mysql deadlock", &mysqldriver.MySQLError{Number: 1213}, apperrors.ErrTransientStorage},
		{"mysql lock wait", &mysqldriver.MySQLError{Number: 1205}, apperrors.ErrTransientStorage},
		{"mysql invalid conn", mysqldriver.ErrInvalidConn, apperrors.ErrTransientStorage},
		{"postgres undefined column", &pgconn.PgError{Code: "42703"}, apperrors.ErrSchemaMismatch},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, apperrors.ErrConstraintViolation},
		{"postgres connection", &pgconn.PgError{Code: "08006"}, apperrors.ErrTransientStorage},
		{"postgres serialization", &pgconn.PgError{Code: "40001"}, apperrors.ErrTransientStorage},
		{"gorm not found", gorm.ErrRecordNotFound, apperrors.ErrNotFound},
		{"gorm duplicated", gorm.ErrDuplicatedKey, apperrors.ErrConstraintViolation},
		{"bad conn", driver.ErrBadConn, apperrors.ErrTransientStorage},
		{"deadline", context.DeadlineExceeded, apperrors.ErrTransientStorage},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "42P01"}), apperrors.ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("op", tt.err)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassify_UnknownAndNil(t *testing.T) {
	assert.NoError(t, Classify("op", nil))

	err := Classify("op", errors.New("boom"))
	var storageErr *apperrors.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, apperrors.StorageUnknown, storageErr.Kind)
	assert.NotErrorIs(t, err, apperrors.ErrSchemaMismatch)
	assert.NotErrorIs(t, err, apperrors.ErrTransientStorage)
}

func TestClassify_AlreadyClassifiedPassesThrough(t *testing.T) {
	first := Classify("inner", &pgconn.PgError{Code: "42703"})
	second := Classify("outer", first)
	assert.Same(t, first, second)
}

func TestClassify_SQLiteSchemaMismatch(t *testing.T) {
	gormDB, err := Open(DriverSQLite, "file:classify_schema?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, gormDB.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, username TEXT)`).Error)

	selectErr := gormDB.Raw(`SELECT id FROM users WHERE is_master = 1`).Scan(&[]int{}).Error
	assert.ErrorIs(t, Classify("select", selectErr), apperrors.ErrSchemaMismatch)

	insertErr := gormDB.Exec(`INSERT INTO users (username, is_master) VALUES ('admin', 1)`).Error
	assert.ErrorIs(t, Classify("insert", insertErr), apperrors.ErrSchemaMismatch)

	missingTable := gormDB.Exec(`SELECT * FROM captions`).Error
	assert.ErrorIs(t, Classify("select", missingTable), apperrors.ErrSchemaMismatch)
}

func TestDetectDriver(t *testing.T) {
	assert.Equal(t, DriverPostgres, DetectDriver("postgres://u:p@host:5432/db"))
	assert.Equal(t, DriverPostgres, DetectDriver("postgresql://u:p@host/db"))
	assert.Equal(t, DriverSQLite, DetectDriver("sqlite://construction_tracker.db"))
	assert.Equal(t, DriverSQLite, DetectDriver("file:test?mode=memory"))
	assert.Equal(t, DriverMySQL, DetectDriver("user:password@tcp(localhost:3306)/app"))
}
