// Package dbtest wires go-sqlmock behind the GORM postgres dialector for tests.
package dbtest

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a GORM handle backed by sqlmock. Unmet expectations fail the test
// at cleanup.
func New(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return wrap(t, sqlDB, mock)
}

// NewWithPings is New with ping monitoring enabled, so tests can ExpectPing.
func NewWithPings(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return wrap(t, sqlDB, mock)
}

func wrap(t testing.TB, sqlDB *sql.DB, mock sqlmock.Sqlmock) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
	})

	return db, mock
}
