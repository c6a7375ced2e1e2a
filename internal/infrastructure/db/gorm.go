package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Option func(*options)

type options struct {
	log          logrus.FieldLogger
	maxOpenConns int
}

// WithLogger routes gorm's SQL logging through l (slow queries and errors only).
func WithLogger(l logrus.FieldLogger) Option { return func(o *options) { o.log = l } }

func WithMaxOpenConns(n int) Option { return func(o *options) { o.maxOpenConns = n } }

// Dialector maps a DB_DRIVER name onto its gorm dialector.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported db driver %q", driver)
}

func OpenGorm(driver, dsn string, opts ...Option) (*gorm.DB, error) {
	dial, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// sqlite serialises writers; one connection avoids "database is locked"
		opts = append(opts, WithMaxOpenConns(1))
	}
	return OpenGormWithDialector(dial, opts...)
}

func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{maxOpenConns: 30}
	for _, fn := range opts {
		fn(&o)
	}

	cfg := &gorm.Config{DisableAutomaticPing: true}
	if o.log != nil {
		cfg.Logger = logger.New(o.log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	} else {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.maxOpenConns)
	sqlDB.SetMaxIdleConns(min(10, o.maxOpenConns))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("gorm ping: %w", err)
	}
	if o.log != nil {
		o.log.WithField("dialect", dial.Name()).Info("gorm: connected")
	}
	return db, nil
}
