package db

import (
	"bytes"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing()

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	gdb, err := OpenGormWithDialector(dial, WithLogger(log))
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	if !bytes.Contains(buf.Bytes(), []byte("gorm: connected")) {
		t.Fatalf("expected connect log line, got %q", buf.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))
	mock.ExpectClose()

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	// the pool must be closed, not leaked
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDialector(t *testing.T) {
	for _, d := range []string{"mysql", "postgres", "sqlite"} {
		dial, err := Dialector(d, "x")
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if dial.Name() != d {
			t.Fatalf("dialect name = %q, want %q", dial.Name(), d)
		}
	}
	if _, err := Dialector("oracle", "x"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
