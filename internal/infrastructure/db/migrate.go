package db

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/account"
	"fleet-fuel-backend/internal/domain/fleet"
	"fleet-fuel-backend/internal/domain/fuel"
	"fleet-fuel-backend/internal/domain/ticket"
)

// Migrations in apply order. IDs are append-only; never edit a shipped one.
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202610010001_fleet_lookups",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&fleet.Vehicle{}, &fleet.Driver{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&fleet.Driver{}, &fleet.Vehicle{})
			},
		},
		{
			ID: "202610010002_work_tickets",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&ticket.Ticket{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&ticket.Ticket{})
			},
		},
		{
			ID: "202610010003_bulk_fuel_accounts",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&account.Account{}, &account.LedgerEntry{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&account.LedgerEntry{}, &account.Account{})
			},
		},
		{
			ID: "202610010004_fuel_records",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&fuel.Record{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&fuel.Record{})
			},
		},
	}
}

func Migrate(db *gorm.DB) error {
	return gormigrate.New(db, gormigrate.DefaultOptions, Migrations()).Migrate()
}
