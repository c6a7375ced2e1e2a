package approval

import (
	"time"

	"github.com/shopspring/decimal"

	"fleet-fuel-backend/internal/domain/ticket"
)

type SubmitInput struct {
	DriverID          string
	VehicleID         string
	Destination       string
	Purpose           string
	FuelRequired      decimal.Decimal
	EstimatedDistance decimal.Decimal
	DepartureDate     *time.Time
	ReturnDate        *time.Time
	Notes             string
	SubmittedBy       string
}

type TicketDTO struct {
	TicketID            string          `json:"ticket_id"`
	DriverID            string          `json:"driver_id"`
	DriverName          string          `json:"driver_name"`
	DriverLicense       string          `json:"driver_license,omitempty"`
	VehicleID           string          `json:"vehicle_id"`
	VehicleRegistration string          `json:"vehicle_registration"`
	Destination         string          `json:"destination"`
	Purpose             string          `json:"purpose"`
	FuelRequired        decimal.Decimal `json:"fuel_required"`
	EstimatedDistance   decimal.Decimal `json:"estimated_distance"`
	DepartureDate       *time.Time      `json:"departure_date,omitempty"`
	ReturnDate          *time.Time      `json:"return_date,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	Status              string          `json:"status"`
	ApprovedBy          *string         `json:"approved_by,omitempty"`
	ApprovedAt          *time.Time      `json:"approved_at,omitempty"`
	RejectedBy          *string         `json:"rejected_by,omitempty"`
	RejectedAt          *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason     *string         `json:"rejection_reason,omitempty"`
	CompletedAt         *time.Time      `json:"completed_at,omitempty"`
	SubmittedBy         string          `json:"submitted_by,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func toDTO(t *ticket.Ticket) *TicketDTO {
	return &TicketDTO{
		TicketID:            t.TicketID,
		DriverID:            t.DriverID,
		DriverName:          t.DriverName,
		DriverLicense:       t.DriverLicense,
		VehicleID:           t.VehicleID,
		VehicleRegistration: t.VehicleRegistration,
		Destination:         t.Destination,
		Purpose:             t.Purpose,
		FuelRequired:        t.FuelRequired,
		EstimatedDistance:   t.EstimatedDistance,
		DepartureDate:       t.DepartureDate,
		ReturnDate:          t.ReturnDate,
		Notes:               t.Notes,
		Status:              string(t.Status),
		ApprovedBy:          t.ApprovedBy,
		ApprovedAt:          t.ApprovedAt,
		RejectedBy:          t.RejectedBy,
		RejectedAt:          t.RejectedAt,
		RejectionReason:     t.RejectionReason,
		CompletedAt:         t.CompletedAt,
		SubmittedBy:         t.SubmittedBy,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}
