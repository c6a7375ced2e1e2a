package fleetmock

import (
	"context"

	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/fleet"
)

var _ fleet.Directory = (*Directory)(nil)

// Directory answers from in-memory maps unless a Fn override is set.
// Unknown ids yield gorm.ErrRecordNotFound, like the real directory.
type Directory struct {
	Vehicles map[string]*fleet.Vehicle
	Drivers  map[string]*fleet.Driver

	GetVehicleFn func(ctx context.Context, vehicleID string) (*fleet.Vehicle, error)
	GetDriverFn  func(ctx context.Context, driverID string) (*fleet.Driver, error)
}

func New() *Directory {
	return &Directory{Vehicles: map[string]*fleet.Vehicle{}, Drivers: map[string]*fleet.Driver{}}
}

func (m *Directory) WithVehicle(id, registration string) *Directory {
	m.Vehicles[id] = &fleet.Vehicle{VehicleID: id, Registration: registration, Status: "active"}
	return m
}

func (m *Directory) WithDriver(id, name, license string) *Directory {
	m.Drivers[id] = &fleet.Driver{DriverID: id, FullName: name, LicenseNumber: license, Status: "active"}
	return m
}

func (m *Directory) GetVehicle(ctx context.Context, vehicleID string) (*fleet.Vehicle, error) {
	if m.GetVehicleFn != nil {
		return m.GetVehicleFn(ctx, vehicleID)
	}
	if v, ok := m.Vehicles[vehicleID]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Directory) GetDriver(ctx context.Context, driverID string) (*fleet.Driver, error) {
	if m.GetDriverFn != nil {
		return m.GetDriverFn(ctx, driverID)
	}
	if d, ok := m.Drivers[driverID]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}
