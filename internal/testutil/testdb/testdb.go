// Package testdb opens migrated in-memory sqlite databases for tests.
package testdb

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fleet-fuel-backend/internal/domain/fleet"
	"fleet-fuel-backend/internal/infrastructure/db"
	"fleet-fuel-backend/pkg/id"
)

// Open returns a fresh in-memory database with the production migrations applied.
// It holds a single connection, so concurrent callers serialise on it and never
// see different in-memory databases. Never touch the returned handle from inside
// a transaction on it: that waits for the connection the transaction holds.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func SeedVehicle(t testing.TB, gdb *gorm.DB, registration string) *fleet.Vehicle {
	t.Helper()
	v := &fleet.Vehicle{VehicleID: id.NewID32(), Registration: registration, Status: "active"}
	if err := gdb.Create(v).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v
}

func SeedDriver(t testing.TB, gdb *gorm.DB, name, license string) *fleet.Driver {
	t.Helper()
	d := &fleet.Driver{DriverID: id.NewID32(), FullName: name, LicenseNumber: license, Status: "active"}
	if err := gdb.Create(d).Error; err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return d
}
