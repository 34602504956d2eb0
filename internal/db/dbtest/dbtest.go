// Package dbtest opens throwaway in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sitereport/internal/db"
	"sitereport/internal/model"
)

var seq atomic.Int64

// Open returns an empty, unmigrated database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	gormDB, err := db.Open(db.DriverSQLite, dsn, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gormDB
}

// OpenMigrated returns a database with every model's table created.
func OpenMigrated(t testing.TB) *gorm.DB {
	t.Helper()
	gormDB := Open(t)
	require.NoError(t, gormDB.AutoMigrate(model.All()...))
	return gormDB
}
