package db

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mockDialector(t *testing.T) (gorm.Dialector, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	return dial, mock
}

func TestOpenGormWithDialector_AppliesPool(t *testing.T) {
	dial, mock := mockDialector(t)
	mock.ExpectPing()

	pool := Pool{MaxOpen: 7, MaxIdle: 2, MaxLifetime: time.Minute, MaxIdleTime: time.Second}
	gdb, err := OpenGormWithDialector(dial, pool)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatal(err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("MaxOpenConnections = %d, want 7", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	dial, mock := mockDialector(t)
	mock.ExpectPing().WillReturnError(errors.New("no route to host"))

	_, err := OpenGormWithDialector(dial, DefaultPool)
	if err == nil || !strings.Contains(err.Error(), "database ping") {
		t.Fatalf("err = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
