package ticket

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table: work_tickets
type Ticket struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TicketID string `gorm:"column:ticket_id;type:char(32);not null;uniqueIndex:ux_work_tickets_ticket_id" json:"ticket_id"`

	DriverID            string `gorm:"column:driver_id;type:char(32);not null;index" json:"driver_id"`
	DriverName          string `gorm:"column:driver_name;size:120;not null" json:"driver_name"`
	DriverLicense       string `gorm:"column:driver_license;size:64" json:"driver_license"`
	VehicleID           string `gorm:"column:vehicle_id;type:char(32);not null;index" json:"vehicle_id"`
	VehicleRegistration string `gorm:"column:vehicle_registration;size:32;not null" json:"vehicle_registration"`

	Destination       string          `gorm:"column:destination;size:255;not null" json:"destination"`
	Purpose           string          `gorm:"column:purpose;type:text;not null" json:"purpose"`
	FuelRequired      decimal.Decimal `gorm:"column:fuel_required;type:decimal(12,3);not null" json:"fuel_required"`
	EstimatedDistance decimal.Decimal `gorm:"column:estimated_distance;type:decimal(12,2);not null;default:0" json:"estimated_distance"`
	DepartureDate     *time.Time      `gorm:"column:departure_date;type:date" json:"departure_date,omitempty"`
	ReturnDate        *time.Time      `gorm:"column:return_date;type:date" json:"return_date,omitempty"`
	Notes             string          `gorm:"column:notes;type:text" json:"notes,omitempty"`

	Status Status `gorm:"column:status;size:16;not null;default:'pending';index:idx_work_tickets_status" json:"status"`

	ApprovedBy      *string    `gorm:"column:approved_by;size:64" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedBy      *string    `gorm:"column:rejected_by;size:64" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	SubmittedBy string    `gorm:"column:submitted_by;size:64" json:"submitted_by,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Ticket) TableName() string { return "work_tickets" }

// StatusChange is what a guarded status update writes alongside the new status.
// Nil fields are left untouched.
type StatusChange struct {
	To              Status
	At              time.Time
	ApprovedBy      *string
	RejectedBy      *string
	RejectionReason *string
}
