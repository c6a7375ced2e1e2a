package gormstore

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/account"
	"fleet-fuel-backend/internal/domain/fleet"
	"fleet-fuel-backend/internal/domain/ticket"
	"fleet-fuel-backend/internal/testutil/testdb"
	"fleet-fuel-backend/pkg/id"
)

func openTestDB(t *testing.T) *gorm.DB { return testdb.Open(t) }

func seedFleet(t *testing.T, gdb *gorm.DB) (*fleet.Vehicle, *fleet.Driver) {
	return testdb.SeedVehicle(t, gdb, "B 1234 XY"), testdb.SeedDriver(t, gdb, "Rina Hartono", "SIM-889")
}

func makeTicket(vehicleID, driverID string) *ticket.Ticket {
	return &ticket.Ticket{
		TicketID:            id.NewID32(),
		DriverID:            driverID,
		DriverName:          "Rina Hartono",
		VehicleID:           vehicleID,
		VehicleRegistration: "B 1234 XY",
		Destination:         "Depot North",
		Purpose:             "Delivery",
		FuelRequired:        decimal.NewFromInt(40),
		EstimatedDistance:   decimal.NewFromInt(120),
		Status:              ticket.StatusPending,
	}
}

func makeAccount(initial int64) *account.Account {
	a := &account.Account{
		AccountID:      id.NewID32(),
		AccountName:    "Main depot",
		SupplierName:   "PetroCo",
		InitialBalance: decimal.NewFromInt(initial),
		CurrentBalance: decimal.NewFromInt(initial),
		CreditLimit:    decimal.Zero,
		Status:         account.StatusActive,
		Version:        1,
	}
	a.SetFuelTypes([]string{"diesel"})
	return a
}

func ptr[T any](v T) *T { return &v }

func now() time.Time { return time.Now().UTC().Truncate(time.Second) }
