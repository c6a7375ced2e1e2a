package gormstore

import (
	"context"

	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/fleet"
)

// FleetDirectory reads the vehicles and drivers tables owned by the fleet CRUD surface.
type FleetDirectory struct{ db *gorm.DB }

func NewFleetDirectory(db *gorm.DB) *FleetDirectory { return &FleetDirectory{db: db} }

func (r *FleetDirectory) GetVehicle(ctx context.Context, vehicleID string) (*fleet.Vehicle, error) {
	var out fleet.Vehicle
	res := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).First(&out)
	return &out, res.Error
}

func (r *FleetDirectory) GetDriver(ctx context.Context, driverID string) (*fleet.Driver, error) {
	var out fleet.Driver
	res := r.db.WithContext(ctx).Where("driver_id = ?", driverID).First(&out)
	return &out, res.Error
}
