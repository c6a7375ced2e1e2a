package fueltx

import (
	"time"

	"github.com/shopspring/decimal"

	"fleet-fuel-backend/internal/domain/fuel"
)

type RecordFuelInput struct {
	VehicleID       string
	DriverID        string
	FuelType        string
	Quantity        decimal.Decimal
	CostPerLiter    decimal.Decimal
	OdometerReading *decimal.Decimal
	Station         string
	ReceiptNumber   string
	FueledAt        time.Time // zero means now
	BulkAccountID   string    // optional
	WorkTicketID    string    // optional
	RecordedBy      string
}

type FuelRecordDTO struct {
	RecordID        string           `json:"record_id"`
	VehicleID       string           `json:"vehicle_id"`
	DriverID        string           `json:"driver_id"`
	FuelType        string           `json:"fuel_type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	CostPerLiter    decimal.Decimal  `json:"cost_per_liter"`
	TotalCost       decimal.Decimal  `json:"total_cost"`
	OdometerReading *decimal.Decimal `json:"odometer_reading,omitempty"`
	Station         string           `json:"station,omitempty"`
	ReceiptNumber   string           `json:"receipt_number,omitempty"`
	FueledAt        time.Time        `json:"fueled_at"`
	BulkAccountID   *string          `json:"bulk_account_id,omitempty"`
	WorkTicketID    *string          `json:"work_ticket_id,omitempty"`
	RecordedBy      string           `json:"recorded_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`

	// Set only on the response to RecordFuel.
	AccountBalance *decimal.Decimal `json:"account_balance,omitempty"`
	TicketStatus   string           `json:"ticket_status,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
}

func toDTO(r *fuel.Record) *FuelRecordDTO {
	return &FuelRecordDTO{
		RecordID:        r.RecordID,
		VehicleID:       r.VehicleID,
		DriverID:        r.DriverID,
		FuelType:        r.FuelType,
		Quantity:        r.Quantity,
		CostPerLiter:    r.CostPerLiter,
		TotalCost:       r.TotalCost,
		OdometerReading: r.OdometerReading,
		Station:         r.Station,
		ReceiptNumber:   r.ReceiptNumber,
		FueledAt:        r.FueledAt,
		BulkAccountID:   r.BulkAccountID,
		WorkTicketID:    r.WorkTicketID,
		RecordedBy:      r.RecordedBy,
		CreatedAt:       r.CreatedAt,
	}
}
