package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	httpadp "fleet-fuel-backend/internal/adapter/http"
	"fleet-fuel-backend/internal/adapter/repository/gormstore"
	"fleet-fuel-backend/internal/config"
	"fleet-fuel-backend/internal/domain/uow"
	"fleet-fuel-backend/internal/infrastructure/cache"
	"fleet-fuel-backend/internal/infrastructure/db"
	"fleet-fuel-backend/internal/infrastructure/logging"
	"fleet-fuel-backend/internal/usecase/approval"
	"fleet-fuel-backend/internal/usecase/fueltx"
	"fleet-fuel-backend/internal/usecase/ledger"
)

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	port := pflag.String("port", "", "listen port (overrides APP_PORT)")
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	if err := run(*envFile, *port, *migrateOnly); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(envFile, port string, migrateOnly bool) error {
	if err := config.LoadDotenv(envFile); err != nil {
		return err
	}
	cfg := config.Load()
	if port != "" {
		cfg.AppPort = port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), db.WithLogger(log))
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.WithField("driver", cfg.DBDriver).Info("migrations applied")
	if migrateOnly {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.OpenRedis(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	repos := gormstore.NewRepos(gdb)
	tx := gormstore.NewGormUoW(gdb)
	retry := uow.RetryPolicy{MaxAttempts: cfg.LedgerMaxRetries}

	led := ledger.NewUsecase(repos.Accounts, tx, ledger.WithLogger(log), ledger.WithRetryPolicy(retry))
	appr := approval.NewUsecase(repos.Tickets, repos.Fleet, tx, approval.WithLogger(log), approval.WithRetryPolicy(retry))
	fuel := fueltx.NewUsecase(repos.FuelRecords, repos.Fleet, tx, led, appr, fueltx.WithLogger(log), fueltx.WithRetryPolicy(retry))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover(), requestLogger(log))

	httpadp.Register(e, httpadp.Deps{
		Health:         httpadp.NewHandler(sqlDB),
		Tickets:        httpadp.NewTicketHandler(appr, log),
		Accounts:       httpadp.NewAccountHandler(led, log),
		Fuel:           httpadp.NewFuelHandler(fuel, log),
		JWTSecret:      []byte(cfg.JWTSecret),
		Redis:          rdb,
		IdempotencyTTL: time.Duration(cfg.IdempTTLSecs) * time.Second,
		Log:            log,
	})

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func requestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"request_id": c.Request().Header.Get("X-Request-Id"),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
