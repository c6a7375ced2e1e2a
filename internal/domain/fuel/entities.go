package fuel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column scales of the stored measures. Inputs with more places would be truncated on write.
const (
	QuantityPlaces     = 3
	CostPerLiterPlaces = 4
	OdometerPlaces     = 1
)

// Table: fuel_records (immutable once written)
type Record struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RecordID string `gorm:"column:record_id;type:char(32);not null;uniqueIndex:ux_fuel_records_record_id" json:"record_id"`

	VehicleID string `gorm:"column:vehicle_id;type:char(32);not null;index:idx_fuel_records_vehicle" json:"vehicle_id"`
	DriverID  string `gorm:"column:driver_id;type:char(32);not null" json:"driver_id"`
	FuelType  string `gorm:"column:fuel_type;size:32;not null" json:"fuel_type"`

	Quantity        decimal.Decimal  `gorm:"column:quantity;type:decimal(12,3);not null" json:"quantity"`
	CostPerLiter    decimal.Decimal  `gorm:"column:cost_per_liter;type:decimal(12,4);not null" json:"cost_per_liter"`
	TotalCost       decimal.Decimal  `gorm:"column:total_cost;type:decimal(18,2);not null" json:"total_cost"`
	OdometerReading *decimal.Decimal `gorm:"column:odometer_reading;type:decimal(12,1)" json:"odometer_reading,omitempty"`

	Station       string    `gorm:"column:station;size:120" json:"station,omitempty"`
	ReceiptNumber string    `gorm:"column:receipt_number;size:64" json:"receipt_number,omitempty"`
	FueledAt      time.Time `gorm:"column:fueled_at;not null" json:"fueled_at"`

	BulkAccountID *string `gorm:"column:bulk_account_id;type:char(32);index:idx_fuel_records_account" json:"bulk_account_id,omitempty"`
	WorkTicketID  *string `gorm:"column:work_ticket_id;type:char(32);index" json:"work_ticket_id,omitempty"`

	RecordedBy string    `gorm:"column:recorded_by;size:64" json:"recorded_by,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Record) TableName() string { return "fuel_records" }

// ComputeTotalCost is the only way total_cost is ever produced.
func ComputeTotalCost(quantity, costPerLiter decimal.Decimal) decimal.Decimal {
	return quantity.Mul(costPerLiter).Round(2)
}
