package fleet

import (
	"context"
	"time"
)

// Vehicles and drivers are owned by the fleet CRUD surface; this service only reads them.

// Table: vehicles
type Vehicle struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	VehicleID    string    `gorm:"column:vehicle_id;type:char(32);not null;uniqueIndex:ux_vehicles_vehicle_id" json:"vehicle_id"`
	Registration string    `gorm:"column:registration;size:32;not null" json:"registration"`
	Status       string    `gorm:"column:status;size:16;not null;default:'active'" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Vehicle) TableName() string { return "vehicles" }

// Table: drivers
type Driver struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DriverID      string    `gorm:"column:driver_id;type:char(32);not null;uniqueIndex:ux_drivers_driver_id" json:"driver_id"`
	FullName      string    `gorm:"column:full_name;size:120;not null" json:"full_name"`
	LicenseNumber string    `gorm:"column:license_number;size:64" json:"license_number"`
	Status        string    `gorm:"column:status;size:16;not null;default:'active'" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Driver) TableName() string { return "drivers" }

// Directory resolves vehicles and drivers; gorm.ErrRecordNotFound when absent.
type Directory interface {
	GetVehicle(ctx context.Context, vehicleID string) (*Vehicle, error)
	GetDriver(ctx context.Context, driverID string) (*Driver, error)
}
