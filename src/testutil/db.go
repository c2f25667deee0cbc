package testutil

import (
	"fmt"
	"testing"
	"ticketing/src/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB returns a migrated in-memory database private to the test.
// A single connection is used so concurrent transactions queue behind each
// other the way row locks make them queue on postgres.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening sqlite database", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("An error '%s' was not expected when accessing sqlite pool", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("An error '%s' was not expected when migrating", err)
	}
	return gormDB
}

// NewMockDB returns a postgres-flavoured gorm handle backed by sqlmock.
func NewMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "sqlmock_db",
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return gormDB, mock
}
